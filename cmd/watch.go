// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 The openfoc authors

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/openfoc/tmc4671/pkg/tmc4671"
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [register]...",
	Short: "Watch registers live",
	Long: `Continuously poll registers and display them in a live table.

Without arguments a default set of feedback registers is watched
(status flags, phase currents, and the PID actual values). Any mix of
register names and numeric addresses can be given instead.

Useful while tuning: run 'tmcctl write' from another terminal and watch
the loop react here.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 500*time.Millisecond, "Poll interval")
	rootCmd.AddCommand(watchCmd)
}

// defaultWatchSet covers the registers most useful while commissioning
// a motor.
var defaultWatchSet = []uint8{
	tmc4671.RegStatusFlags,
	tmc4671.RegAdcIwyIux,
	tmc4671.RegAdcIv,
	tmc4671.RegPidTorqueFluxActual,
	tmc4671.RegPidVelocityActual,
	tmc4671.RegPidPositionActual,
}

func runWatch(cmd *cobra.Command, args []string) error {
	addrs := defaultWatchSet
	if len(args) > 0 {
		addrs = make([]uint8, 0, len(args))
		for _, arg := range args {
			addr, err := resolveRegister(arg)
			if err != nil {
				return err
			}
			addrs = append(addrs, addr)
		}
	}

	dev, closer, connInfo, err := OpenDevice()
	if err != nil {
		return err
	}
	defer closer.Close()

	p := tea.NewProgram(initialWatchModel(dev, addrs, connInfo))
	_, err = p.Run()
	return err
}

// Messages
type watchTickMsg time.Time
type readingsMsg struct {
	rows    []table.Row
	readErr error
}

// watchModel is the live register table.
type watchModel struct {
	dev      *tmc4671.Device
	addrs    []uint8
	connInfo string
	table    table.Model
	lastErr  error
	polls    int
	width    int
	quitting bool
}

func initialWatchModel(dev *tmc4671.Device, addrs []uint8, connInfo string) watchModel {
	columns := []table.Column{
		{Title: "Addr", Width: 6},
		{Title: "Register", Width: 32},
		{Title: "Hex", Width: 12},
		{Title: "Signed", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(len(addrs)+1),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	return watchModel{
		dev:      dev,
		addrs:    addrs,
		connInfo: connInfo,
		table:    t,
		width:    80,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tea.Batch(
		pollCmd(m.dev, m.addrs),
		tea.EnterAltScreen,
	)
}

func watchTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// pollCmd reads the watched registers off the Update loop so a slow
// bus never blocks input handling.
func pollCmd(dev *tmc4671.Device, addrs []uint8) tea.Cmd {
	return func() tea.Msg {
		rows := make([]table.Row, 0, len(addrs))
		for _, addr := range addrs {
			value, err := dev.ReadRegister(addr)
			if err != nil {
				return readingsMsg{readErr: err}
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("0x%02X", addr),
				tmc4671.RegisterName(addr),
				fmt.Sprintf("0x%08X", value),
				fmt.Sprintf("%d", int32(value)),
			})
		}
		return readingsMsg{rows: rows}
	}
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case watchTickMsg:
		return m, pollCmd(m.dev, m.addrs)

	case readingsMsg:
		m.polls++
		if msg.readErr != nil {
			m.lastErr = msg.readErr
		} else {
			m.lastErr = nil
			m.table.SetRows(msg.rows)
		}
		return m, watchTickCmd(watchInterval)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m watchModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("TMCCTL - REGISTER WATCH"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Interval: %s | Polls: %d | Press 'q' to quit",
		m.connInfo, watchInterval, m.polls)))
	s.WriteString("\n\n")

	s.WriteString(boxStyle.Render(m.table.View()))
	s.WriteString("\n")

	if m.lastErr != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.lastErr)))
		s.WriteString("\n")
	}

	return s.String()
}
