package patent

import (
	"strings"

	"github.com/patsift/patsift/internal/sgml"
)

// PadIPC normalizes an early-generation IPC code: blanks in the group
// positions become zeros and the subgroup is separated with a slash.
// Codes too short to carry a subgroup are returned unchanged.
func PadIPC(ipc string) string {
	if len(ipc) >= 8 {
		return ipc[:4] + strings.ReplaceAll(ipc[4:7], " ", "0") + "/" + ipc[7:]
	}
	return ipc
}

// IPCsGen15 extracts IPC codes from a generation-1.5 grant classification
// section (B511 primary, B512 secondary).
func IPCsGen15(sec *sgml.Element) []string {
	out := []string{sec.FindText("b511/pdat")}
	for _, ipc := range sec.FindAll("b512") {
		out = append(out, ipc.FindText("pdat"))
	}
	return out
}

// IPCsGen2 extracts IPC codes from a generation-2 application classification
// section.
func IPCsGen2(sec *sgml.Element) []string {
	out := []string{sec.FindText("classification-ipc-primary/ipc")}
	for _, ipc := range sec.FindAll("classification-ipc-secondary") {
		out = append(out, ipc.FindText("ipc"))
	}
	return out
}

// IPCsGen3 extracts IPC codes from a generation-3 main/further classification
// section, shared by applications and grants.
func IPCsGen3(sec *sgml.Element) []string {
	out := []string{sec.FindText("main-classification")}
	for _, ipc := range sec.FindAll("further-classification") {
		out = append(out, strings.ToLower(strings.TrimSpace(ipc.Text)))
	}
	return out
}

// IPCsGen3R assembles IPCR codes from their per-part elements, zero-padding
// the main group to three characters.
func IPCsGen3R(sec *sgml.Element) []string {
	var out []string
	for _, ipc := range sec.FindAll("classification-ipcr") {
		group := ipc.FindText("main-group")
		for len(group) < 3 {
			group = "0" + group
		}
		out = append(out,
			ipc.FindText("section")+ipc.FindText("class")+ipc.FindText("subclass")+
				group+"/"+ipc.FindText("subgroup"))
	}
	return out
}
