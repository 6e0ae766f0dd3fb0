// Command rs580 runs the 8080-based machine at full speed behind a
// terminal front-end: RAM, the RK-86 keyboard matrix and a video-RAM
// window rendered through bubbletea/lipgloss, wired up the way the
// original implementation's own main loop wires RAM/keyboard/ROM onto
// a single address space.
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/andy128k/rs580/cpu"
	"github.com/andy128k/rs580/display"
	"github.com/andy128k/rs580/keyboard"
	"github.com/andy128k/rs580/mem"
)

func main() {
	var (
		romPath    string
		entryPoint uint16
		ramSize    int
		stepSleep  time.Duration
	)

	root := &cobra.Command{
		Use:   "rs580",
		Short: "Run an RK-86-family 8080 machine in a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			rom, err := os.ReadFile(romPath)
			if err != nil {
				return fmt.Errorf("reading ROM: %w", err)
			}

			kbd := keyboard.New()
			bus := mem.NewBus().
				Add(0x0000, 0x4000, mem.NewRAM(ramSize)).
				Add(0x8000, 0xA000, kbd).
				Add(0xF800, 0x10000, mem.NewROM(rom))

			machine := cpu.New(bus)
			machine.Regs.PC = entryPoint

			p := tea.NewProgram(runModel{
				machine:   machine,
				keyboard:  kbd,
				bus:       bus,
				stepSleep: stepSleep,
			}, tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	root.Flags().StringVar(&romPath, "rom", "", "path to the ROM image")
	root.Flags().Uint16Var(&entryPoint, "entry", 0xF800, "initial program counter")
	root.Flags().IntVar(&ramSize, "ram-size", 0x4000, "RAM segment size in bytes")
	root.Flags().DurationVar(&stepSleep, "step-sleep", 10*time.Microsecond, "delay between instructions")
	root.MarkFlagRequired("rom")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

type tickMsg time.Time

type runModel struct {
	machine   *cpu.Machine
	keyboard  *keyboard.Device
	bus       *mem.Bus
	stepSleep time.Duration
	fault     error
}

func (m runModel) Init() tea.Cmd {
	return m.tick()
}

func (m runModel) tick() tea.Cmd {
	return tea.Tick(m.stepSleep, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		s := msg.String()
		if s == "ctrl+c" {
			return m, tea.Quit
		}
		m.keyboard.Press(s)
		return m, nil

	case tickMsg:
		if m.machine.Halted {
			return m, tea.Quit
		}
		m.machine.Step()
		if err := m.machine.Err(); err != nil {
			m.fault = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m runModel) View() string {
	if m.fault != nil {
		return fmt.Sprintf("fault: %v\n", m.fault)
	}
	if m.machine.Halted {
		return "HALT\n"
	}

	frame := display.Capture(m.bus, m.keyboard.Indicators())

	border := lipgloss.NewStyle().Border(lipgloss.NormalBorder())
	var screen string
	for y := 0; y < display.Rows; y++ {
		screen += frame.Row(y) + "\n"
	}
	return border.Render(screen) + "\nindicators: " + frame.IndicatorBits()
}
