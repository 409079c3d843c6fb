package esxi

import (
	"strings"
)

// VibRecord is a parsed esxcli response block:
//
//	VMware_bootbank_esx-ui_0.0.2-0.1.3172496
//	   Name: esx-ui
//	   Version: 0.0.2-0.1.3172496
type VibRecord struct {
	Title      string
	Attributes map[string]string
}

// Has returns true if the attribute exists
func (r *VibRecord) Has(key string) bool {
	_, exists := r.Attributes[key]
	return exists
}

// Get returns an attribute value, or an empty string
func (r *VibRecord) Get(key string) string {
	return r.Attributes[key]
}

// ParseVibRecord parses an esxcli software vib response. The first
// non-indented line is the title, indented "Key: value" lines are
// attributes. With skipEmpty, attributes without value are dropped.
func ParseVibRecord(text string, skipEmpty bool) *VibRecord {
	record := &VibRecord{
		Attributes: make(map[string]string),
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
		if !indented {
			if record.Title == "" {
				record.Title = strings.TrimSpace(line)
			}
			continue
		}

		key, val, found := strings.Cut(strings.TrimSpace(line), ":")
		if !found {
			continue
		}
		val = strings.TrimSpace(val)
		if skipEmpty && val == "" {
			continue
		}
		record.Attributes[key] = val
	}
	return record
}

// ParsePowerState parses "vim-cmd vmsvc/power.getstate" output,
// returns true if the VM is powered on
func ParsePowerState(text string) bool {
	return strings.HasSuffix(strings.TrimSpace(text), "on")
}
