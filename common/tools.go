package common

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// TrueStr is the true truth.
const TrueStr = "true"

var placeholderRegexp = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// PathExist returns true if a file or directory exists
func PathExist(path string) bool {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}

	// os.IsNotExist is not enough, see ENOTDIR for
	// things like /etc/passwd/test
	if err != nil {
		return false
	}

	return true
}

// InterfaceValueToString converts most interface types to string
func InterfaceValueToString(iv interface{}) string {
	switch civ := iv.(type) {
	case int:
		return strconv.Itoa(civ)
	case int32:
		return fmt.Sprintf("%d", civ)
	case int64:
		return strconv.FormatInt(civ, 10)
	case uint64:
		return strconv.FormatUint(civ, 10)
	case float64:
		return strconv.FormatFloat(civ, 'f', -1, 64)
	case string:
		return civ
	case []byte:
		return string(civ)
	case bool:
		return strconv.FormatBool(civ)
	case time.Duration:
		return civ.String()
	case []string:
		return strings.Join(civ, ", ")
	case map[string]string:
		keys := SortedKeys(civ)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+"="+civ[k])
		}
		return strings.Join(parts, ", ")
	}
	return "INVALID_TYPE"
}

// StringFindPlaceholders returns a deduplicated slice of all
// placeholders ({vm_id}) in the string, in order of appearance
func StringFindPlaceholders(str string) []string {
	all := placeholderRegexp.FindAllStringSubmatch(str, -1)

	seen := make(map[string]bool)
	res := []string{}
	for _, v := range all {
		if seen[v[1]] {
			continue
		}
		seen[v[1]] = true
		res = append(res, v[1])
	}
	return res
}

// StringExpandPlaceholders expands placeholders ({order}, for instance)
// in str and returns a new string. Unknown placeholders are left as-is.
func StringExpandPlaceholders(str string, values map[string]interface{}) string {
	return placeholderRegexp.ReplaceAllStringFunc(str, func(match string) string {
		name := match[1 : len(match)-1]
		if val, exists := values[name]; exists {
			return InterfaceValueToString(val)
		}
		return match
	})
}

// SortedKeys returns the keys of a string map, sorted
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
