package lifecycle

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
)

// Network is one attached network of a VM.
type Network struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// VM is the per-server entry of a query response.
type VM struct {
	VMID     string    `json:"vmId"`
	VNCURL   string    `json:"vncUrl"`
	Networks []Network `json:"networks"`
}

// EventEntry is one status change of a resource.
type EventEntry struct {
	EventTime            string `json:"eventTime"`
	ResourceStatus       string `json:"resourceStatus"`
	ResourceStatusReason string `json:"resourceStatusReason"`
}

// ResourceEvents groups the events of one stack resource.
type ResourceEvents struct {
	ResourceName       string       `json:"resourceName"`
	LogicalResourceID  string       `json:"logicalResourceId"`
	PhysicalResourceID string       `json:"physicalResourceId"`
	Events             []EventEntry `json:"events"`
}

type queryBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data []VM   `json:"data"`
}

type codeBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
}

var codeMessages = map[int]string{
	400: "invalid request",
	404: "instance not found",
	409: "conflict",
	500: "server error",
}

// QueryJSON renders the result of Query.
func QueryJSON(vms []VM, err error) string {
	if err != nil {
		code := Code(err)
		return mustJSON(codeBody{Code: code, Msg: codeMessages[code]})
	}
	if vms == nil {
		vms = []VM{}
	}
	return mustJSON(queryBody{Code: 200, Msg: "ok", Data: vms})
}

// EventsJSON renders the result of WorkloadEvents: the grouped events on
// success, a bare code object otherwise.
func EventsJSON(groups []ResourceEvents, err error) string {
	if err != nil {
		return mustJSON(codeBody{Code: Code(err)})
	}
	if groups == nil {
		groups = []ResourceEvents{}
	}
	return mustJSON(groups)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"code":500}`
	}
	return string(b)
}

// vmsFromOutputs turns stack outputs shaped {vmId, vncUrl, networks} into
// VMs. Outputs of any other shape are skipped.
func vmsFromOutputs(outputs []heat.Output) []VM {
	vms := []VM{}
	for _, out := range outputs {
		value, ok := out.Value.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := value["vmId"]; !ok {
			continue
		}
		vm := VM{
			VMID:     text(value["vmId"]),
			VNCURL:   text(value["vncUrl"]),
			Networks: []Network{},
		}
		nets, _ := value["networks"].(map[string]any)
		names := make([]string, 0, len(nets))
		for name := range nets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := uuid.Parse(name); err == nil {
				continue
			}
			vm.Networks = append(vm.Networks, Network{Name: name, IP: firstAddr(nets[name])})
		}
		vms = append(vms, vm)
	}
	return vms
}

// firstAddr returns the first address of a network entry, which the backend
// reports either as a list of {addr: ...} objects or as plain strings.
func firstAddr(v any) string {
	switch t := v.(type) {
	case []any:
		if len(t) == 0 {
			return ""
		}
		return firstAddr(t[0])
	case map[string]any:
		return text(t["addr"])
	default:
		return text(t)
	}
}

func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// groupEvents groups events by resource name, groups ordered by first
// appearance and events kept in backend order.
func groupEvents(events []heat.Event) []ResourceEvents {
	groups := []ResourceEvents{}
	index := make(map[string]int)
	for _, ev := range events {
		entry := EventEntry{
			EventTime:            formatTime(ev.Time),
			ResourceStatus:       ev.ResourceStatus,
			ResourceStatusReason: ev.ResourceStatusReason,
		}
		i, ok := index[ev.ResourceName]
		if !ok {
			i = len(groups)
			index[ev.ResourceName] = i
			groups = append(groups, ResourceEvents{
				ResourceName:       ev.ResourceName,
				LogicalResourceID:  ev.LogicalResourceID,
				PhysicalResourceID: ev.PhysicalResourceID,
			})
		}
		groups[i].Events = append(groups[i].Events, entry)
	}
	return groups
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
