package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// StringExpression substitutes python-style "%(var)s" references, the
// notation operators carry over from the queue server's own
// configuration files.
type StringExpression struct {
	env map[string]string
}

// NewStringExpression creates a StringExpression. Process environment
// variables are available as ENV_<name>; additional variables are
// given as alternating key, value arguments.
func NewStringExpression(envs ...string) *StringExpression {
	se := &StringExpression{env: make(map[string]string)}

	for _, env := range os.Environ() {
		t := strings.SplitN(env, "=", 2)
		se.env["ENV_"+t[0]] = t[1]
	}
	n := len(envs)
	for i := 0; i+1 < n; i += 2 {
		se.env[envs[i]] = envs[i+1]
	}

	hostname, err := os.Hostname()
	if err == nil {
		se.env["host_node_name"] = hostname
	}

	return se
}

// Add adds variable (key,value)
func (se *StringExpression) Add(key string, value string) *StringExpression {
	se.env[key] = value
	return se
}

// Eval substitutes every "%(var)s" and "%(var)d" in s with the value
// of var, and returns the resulting string.
func (se *StringExpression) Eval(s string) (string, error) {
	for {
		start := strings.Index(s, "%(")
		if start == -1 {
			return s, nil
		}

		end := strings.IndexByte(s[start:], ')')
		if end == -1 {
			return "", fmt.Errorf("invalid string expression format")
		}
		end += start
		if end+1 >= len(s) {
			return "", fmt.Errorf("invalid string expression format")
		}

		varName := s[start+2 : end]
		varValue, ok := se.env[varName]
		if !ok {
			return "", fmt.Errorf("fail to find the variable %s", varName)
		}

		switch typ := s[end+1]; typ {
		case 's':
			s = s[0:start] + varValue + s[end+2:]
		case 'd':
			i, err := strconv.Atoi(varValue)
			if err != nil {
				return "", fmt.Errorf("can't convert %s to integer", varValue)
			}
			s = s[0:start] + strconv.Itoa(i) + s[end+2:]
		default:
			return "", fmt.Errorf("not implemented type:%c", typ)
		}
	}
}
