package util

// Sub returns the elements of arr1 that are absent from arr2.
func Sub(arr1, arr2 []string) []string {
	other := make(map[string]bool, len(arr2))
	for _, s := range arr2 {
		other[s] = true
	}
	result := make([]string, 0)
	for _, s := range arr1 {
		if !other[s] {
			result = append(result, s)
		}
	}
	return result
}

// ElementsMatchString returns true if arr1 and arr2 contain the same
// elements without regard for order. Both slices are expected to be
// duplicate free.
func ElementsMatchString(arr1, arr2 []string) bool {
	if len(arr1) != len(arr2) {
		return false
	}
	return len(Sub(arr1, arr2)) == 0
}
