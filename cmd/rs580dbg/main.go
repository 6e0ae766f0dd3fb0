// Command rs580dbg is a single-step TUI debugger for the 8080 machine,
// generalized from the project's own NES-era step debugger: a
// raw-bytes page table plus a register/flag panel, advanced one
// instruction at a time on spacebar.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/andy128k/rs580/cpu"
	"github.com/andy128k/rs580/mem"
)

func main() {
	var (
		programPath string
		offset      uint16
	)

	root := &cobra.Command{
		Use:   "rs580dbg --program FILE",
		Short: "Step through an 8080 program one instruction at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := os.ReadFile(programPath)
			if err != nil {
				return fmt.Errorf("reading program: %w", err)
			}

			ram := mem.NewDefaultRAM()
			for i, b := range program {
				ram.WriteByte(offset+uint16(i), b)
			}

			machine := cpu.New(ram)
			machine.Regs.PC = offset

			m, err := tea.NewProgram(model{machine: machine, ram: ram, offset: offset}).Run()
			if err != nil {
				return err
			}
			if fm, ok := m.(model); ok && fm.fault != nil {
				fmt.Println("fault:", fm.fault)
			}
			return nil
		},
	}
	root.Flags().StringVar(&programPath, "program", "", "raw binary to load into RAM")
	root.Flags().Uint16Var(&offset, "offset", 0, "address to load the program at, and initial PC")
	root.MarkFlagRequired("program")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

type model struct {
	machine *cpu.Machine
	ram     *mem.RAM
	offset  uint16

	prevPC uint16
	fault  error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.machine.Regs.PC
			m.machine.Step()
			if err := m.machine.Err(); err != nil {
				m.fault = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders a single 16-byte page as a line. The current PC is
// highlighted.
func (m model) renderPage(start uint16) string {
	if start%16 != 0 {
		panic("start must be a multiple of 16")
	}
	s := fmt.Sprintf("%04x | ", start)
	for i := uint16(0); i < 16; i++ {
		b := m.ram.ReadByte(start + i)
		if start+i == m.machine.Regs.PC {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	r := m.machine.Regs
	var flags string
	for _, flag := range []bool{r.FlagS, r.FlagZ, r.FlagAC, r.FlagP, r.FlagC} {
		if flag {
			flags += "/ "
		} else {
			flags += "  "
		}
	}
	return fmt.Sprintf(`
PC: %04x (%04x)
SP: %04x
 A: %02x
 B: %02x  C: %02x
 D: %02x  E: %02x
 H: %02x  L: %02x
halted: %v
S Z AC P C
`,
		r.PC, m.prevPC, r.SP, r.A,
		r.B, r.C, r.D, r.E, r.H, r.L,
		m.machine.Halted,
	) + flags
}

func (m model) pageTable() string {
	header := "page | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}

	pages := []string{header}
	base := m.machine.Regs.PC &^ 0xF
	offsets := []uint16{
		0, 0x10, 0x20, 0x30, 0x40,
		base, base + 0x10, base + 0x20, base + 0x30, base + 0x40,
	}
	for _, i := range offsets {
		pages = append(pages, m.renderPage(i))
	}
	return strings.Join(pages, "\n")
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(m.ram.ReadByte(m.machine.Regs.PC)),
	)
}
