package esxi

import (
	"strconv"
	"strings"
)

// Autostart actions, as normalized by NormalizeAction
const (
	ActionPowerOn  = "PowerOn"
	ActionPowerOff = "PowerOff"
)

// OrderDisabled is the startOrder of a disabled entry
const OrderDisabled = -1

// AutostartEntry is the autostart configuration of a VM
type AutostartEntry struct {
	VMID   int
	Order  int
	Action string
}

// Enabled returns true if the VM starts with the host
func (e *AutostartEntry) Enabled() bool {
	return e.Action == ActionPowerOn && e.Order > 0
}

// AutostartParseMode selects which records ParseAutostart keeps
type AutostartParseMode int

// Parser modes. Both readers of this format exist: the autostart manager
// needs to see disabled entries, the VM info reader only wants VMs that
// will actually start.
const (
	// AutostartAllEntries keeps every record, whatever its action
	AutostartAllEntries AutostartParseMode = iota
	// AutostartEnabledOnly keeps records with a PowerOn action and a
	// positive order
	AutostartEnabledOnly
)

func (m AutostartParseMode) String() string {
	switch m {
	case AutostartAllEntries:
		return "all-entries"
	case AutostartEnabledOnly:
		return "enabled-only"
	}
	return "unknown"
}

const (
	autostartKeyRecord = "key"
	autostartKeyOrder  = "startOrder"
	autostartKeyAction = "startAction"
	vmKeyPrefix        = "vim.VirtualMachine:"
)

type autostartParserState int

const (
	awaitingRecord autostartParserState = iota
	inRecord
)

// autostartField is a "key = value" token of a get_autostartseq block
type autostartField struct {
	Key   string
	Value string
}

// NormalizeAction returns PowerOn or PowerOff whatever the case used
// by the host ("powerOn" was seen), other actions are kept as-is
func NormalizeAction(action string) string {
	switch {
	case strings.EqualFold(action, ActionPowerOn):
		return ActionPowerOn
	case strings.EqualFold(action, ActionPowerOff):
		return ActionPowerOff
	}
	return action
}

// tokenizeAutostartLine extracts a field from a line like
//
//	key = 'vim.VirtualMachine:3',
//
// "key: value" is accepted too. ok is false for structure lines
// (parenthesis, braces, brackets) and anything unrecognized.
func tokenizeAutostartLine(line string) (field autostartField, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "(") ||
		strings.HasPrefix(trimmed, "}") || strings.HasPrefix(trimmed, "]") {
		return field, false
	}

	trimmed = strings.TrimSpace(strings.Trim(trimmed, "', \t\r"))
	parts := strings.Fields(trimmed)

	switch {
	case len(parts) == 3 && (parts[1] == "=" || parts[1] == ":"):
		field.Key = parts[0]
		field.Value = parts[2]
	case len(parts) == 2 && strings.HasSuffix(parts[0], ":"):
		field.Key = strings.TrimSuffix(parts[0], ":")
		field.Value = parts[1]
	default:
		return field, false
	}

	field.Value = strings.Trim(field.Value, `'",`)
	return field, field.Key != ""
}

// parseVMKey extracts 3 from "vim.VirtualMachine:3"
func parseVMKey(value string) (int, bool) {
	if !strings.HasPrefix(value, vmKeyPrefix) {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimPrefix(value, vmKeyPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

// autostartParser is a small state machine fed with fields
type autostartParser struct {
	mode    AutostartParseMode
	state   autostartParserState
	current *AutostartEntry
	entries map[int]*AutostartEntry
}

func (p *autostartParser) feed(field autostartField) {
	switch field.Key {
	case autostartKeyRecord:
		p.flush()
		id, ok := parseVMKey(field.Value)
		if !ok {
			// unknown record, ignore its fields
			return
		}
		p.current = &AutostartEntry{VMID: id}
		p.state = inRecord

	case autostartKeyOrder:
		if p.state != inRecord {
			return
		}
		order, err := strconv.Atoi(field.Value)
		if err != nil {
			return
		}
		p.current.Order = order

	case autostartKeyAction:
		if p.state != inRecord {
			return
		}
		p.current.Action = NormalizeAction(field.Value)
	}
}

func (p *autostartParser) flush() {
	if p.state == inRecord {
		if p.mode == AutostartAllEntries || p.current.Enabled() {
			p.entries[p.current.VMID] = p.current
		}
	}
	p.current = nil
	p.state = awaitingRecord
}

// ParseAutostart parses "vim-cmd hostsvc/autostartmanager/get_autostartseq"
// output into entries keyed by VM id. Malformed lines are skipped.
func ParseAutostart(text string, mode AutostartParseMode) map[int]*AutostartEntry {
	p := &autostartParser{
		mode:    mode,
		state:   awaitingRecord,
		entries: make(map[int]*AutostartEntry),
	}

	for _, line := range strings.Split(text, "\n") {
		field, ok := tokenizeAutostartLine(line)
		if !ok {
			continue
		}
		p.feed(field)
	}
	p.flush()

	return p.entries
}
