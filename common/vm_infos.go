package common

// APIVMInfos is the "facts" output of "vm list" (VM ids are strings
// when used as keys)
type APIVMInfos struct {
	VMByID    map[string]string `json:"vm_by_id"`
	IDByVM    map[string]int    `json:"id_by_vm"`
	PathByVM  map[string]string `json:"path_by_vm"`
	StartByVM map[string]int    `json:"start_by_vm,omitempty"`
	PowerByVM map[string]bool   `json:"power_by_vm,omitempty"`
}

// APIVMListEntry is an entry for a VM
type APIVMListEntry struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Datastore  string `json:"datastore"`
	Path       string `json:"path"`
	GuestOS    string `json:"guest_os,omitempty"`
	HWVersion  string `json:"hw_version,omitempty"`
	StartOrder int    `json:"start_order,omitempty"` // 0 when not enabled
	PoweredOn  *bool  `json:"powered_on,omitempty"`
}

// APIVMListEntries is a list of entries for "vm list" command
type APIVMListEntries []APIVMListEntry
