package client

import (
	"errors"
	"strings"

	"github.com/Knetic/govaluate"
	"github.com/OnitiFR/esxictl/common"
	"github.com/ryanuber/go-glob"
)

func searchVMsFunctions(entry **common.APIVMListEntry) map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{

		// strlen(string) int
		"strlen": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("strlen() need 1 argument")
			}
			str, castOK := args[0].(string)
			if !castOK {
				return nil, errors.New("strlen() argument must be a string")
			}
			return (float64)(len(str)), nil
		},

		// like(string) bool
		// return true if the wildcard match the VM's name
		"like": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("like() need 1 argument")
			}
			expr, castOK := args[0].(string)
			if !castOK {
				return nil, errors.New("like() argument 1 must be a string")
			}
			return glob.Glob(expr, (*entry).Name), nil
		},

		// on_datastore(string) bool
		"on_datastore": func(args ...interface{}) (interface{}, error) {
			if len(args) != 1 {
				return nil, errors.New("on_datastore() need 1 argument")
			}
			store, castOK := args[0].(string)
			if !castOK {
				return nil, errors.New("on_datastore() argument 1 must be a string")
			}
			return strings.EqualFold((*entry).Datastore, store), nil
		},
	}
}

// SearchVMs returns entries matching a boolean expression, like:
//
//	autostart && like("web*")
//	start_order > 2 || powered_on == false
//
// Variables: id, name, datastore, path, guest_os, hw_version,
// start_order, autostart, powered_on.
func SearchVMs(entries common.APIVMListEntries, q string) (common.APIVMListEntries, error) {
	if strings.TrimSpace(q) == "" {
		return nil, errors.New("empty search expression")
	}

	var current *common.APIVMListEntry
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(q, searchVMsFunctions(&current))
	if err != nil {
		return nil, err
	}

	matches := common.APIVMListEntries{}
	for i := range entries {
		current = &entries[i]

		params := make(map[string]interface{})
		params["id"] = (float64)(current.ID)
		params["name"] = current.Name
		params["datastore"] = current.Datastore
		params["path"] = current.Path
		params["guest_os"] = current.GuestOS
		params["hw_version"] = current.HWVersion
		params["start_order"] = (float64)(current.StartOrder)
		params["autostart"] = current.StartOrder > 0
		params["powered_on"] = current.PoweredOn != nil && *current.PoweredOn

		res, err := expr.Evaluate(params)
		if err != nil {
			return nil, err
		}

		match, castOK := res.(bool)
		if !castOK {
			return nil, errors.New("require a boolean expression")
		}
		if match {
			matches = append(matches, *current)
		}
	}
	return matches, nil
}

// LikeVMs returns entries with a name matching the glob pattern
func LikeVMs(entries common.APIVMListEntries, pattern string) common.APIVMListEntries {
	matches := common.APIVMListEntries{}
	for _, entry := range entries {
		if glob.Glob(pattern, entry.Name) {
			matches = append(matches, entry)
		}
	}
	return matches
}
