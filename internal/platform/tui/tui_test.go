package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-island/internal/config"
	"github.com/vovakirdan/pixel-island/internal/core"
	"github.com/vovakirdan/pixel-island/internal/engine"
	_ "github.com/vovakirdan/pixel-island/internal/games/challenge"
	"github.com/vovakirdan/pixel-island/internal/games/fishing"
	"github.com/vovakirdan/pixel-island/internal/games/island"
	"github.com/vovakirdan/pixel-island/internal/progress"
	"github.com/vovakirdan/pixel-island/internal/scene"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapCode(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		code core.Code
		ok   bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.CodeLeft, true},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.CodeRight, true},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.CodeUp, true},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.CodeDown, true},
		{"wasd", runeKey("a"), core.CodeLeft, true},
		{"vim", runeKey("j"), core.CodeDown, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.CodeAction, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.CodeAction, true},
		{"quit is not a game key", runeKey("q"), 0, false},
		{"unbound", runeKey("x"), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := km.Code(tt.msg)
			if ok != tt.ok || (ok && code != tt.code) {
				t.Errorf("Code(%q) = %v, %v; expected %v, %v", tt.msg.String(), code, ok, tt.code, tt.ok)
			}
		})
	}
}

func TestKeyHold(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := newKeyHold(150 * time.Millisecond)

	h.Press(core.CodeLeft, t0)
	h.Press(core.CodeAction, t0)
	if got := h.Expire(t0.Add(100 * time.Millisecond)); len(got) != 0 {
		t.Errorf("released %v before the hold ran out", got)
	}

	h.Press(core.CodeLeft, t0.Add(120*time.Millisecond)) // auto-repeat
	got := h.Expire(t0.Add(150 * time.Millisecond))
	if len(got) != 1 || got[0] != core.CodeAction {
		t.Errorf("released %v, expected only action", got)
	}
	if !h.Held(core.CodeLeft) || h.Held(core.CodeAction) {
		t.Error("held state does not match the presses")
	}

	if got := h.Expire(t0.Add(time.Second)); len(got) != 1 || got[0] != core.CodeLeft {
		t.Errorf("released %v, expected left", got)
	}
}

func TestScreenRendererPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorLime)
	s.SetBG(5, 1, core.ColorWater)

	sr := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	got := sr.Render(s)
	if got != "abcd  \n      " {
		t.Errorf("render = %q", got)
	}
	if len(sr.styles) != 4 {
		t.Errorf("cached styles = %d, expected 4", len(sr.styles))
	}
}

func TestProfileName(t *testing.T) {
	tests := []struct {
		user, want string
	}{
		{"maxi", "maxi"},
		{"Maxi", "maxi"},
		{"maxi smith", "maxi_smith"},
		{"../etc/passwd", "etc_passwd"},
		{"", "guest"},
		{"???", "guest"},
	}
	for _, tt := range tests {
		if got := ProfileName(tt.user); got != tt.want {
			t.Errorf("ProfileName(%q) = %q, expected %q", tt.user, got, tt.want)
		}
	}
}

func newTestModel(t *testing.T) (*Model, *progress.Store) {
	t.Helper()
	loader, err := engine.LoadAssets(t.Context(), "")
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	store := progress.NewStore(progress.NewMemoryBackend(), logger)

	m, err := NewModel(Options{
		Config:   config.Default(),
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Assets:   loader,
		Progress: store,
		Logger:   logger,
		Renderer: lipgloss.NewRenderer(io.Discard),
	})
	if err != nil {
		t.Fatal(err)
	}
	return m, store
}

func TestModelPlaysIsland(t *testing.T) {
	m, _ := newTestModel(t)
	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init returned no tick command")
	}
	if name := m.Engine().Manager().ActiveName(); name != scene.Island {
		t.Fatalf("active scene = %q, expected island", name)
	}

	view := m.View()
	if !strings.Contains(view, "Maxi's Island") {
		t.Errorf("view is missing the island title:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines != 24 {
		t.Errorf("view has %d lines, expected 24", lines)
	}

	hub := m.Engine().Manager().Active().(*island.Scene)
	startX := hub.Player().X

	now := time.Now()
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(TickMsg(now.Add(16 * time.Millisecond)))
	m.Update(TickMsg(now.Add(32 * time.Millisecond)))
	moved := hub.Player().X
	if moved <= startX {
		t.Fatalf("player did not move right: x %v -> %v", startX, moved)
	}

	m.Update(TickMsg(now.Add(time.Second)))
	m.Update(TickMsg(now.Add(time.Second + 16*time.Millisecond)))
	if hub.Player().X != moved {
		t.Errorf("player kept moving after the key hold ran out: x %v -> %v", moved, hub.Player().X)
	}
}

func TestModelCollectionPausesGame(t *testing.T) {
	m, store := newTestModel(t)
	m.Init()
	store.AddFish("fish_blue")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !strings.Contains(m.View(), "FISH COLLECTION") {
		t.Fatal("tab did not open the collection")
	}
	if !strings.Contains(m.View(), "Blue Fish") {
		t.Errorf("caught fish missing from the collection:\n%s", m.View())
	}

	ticks := m.Engine().Loop().Ticks()
	now := time.Now()
	m.Update(TickMsg(now.Add(16 * time.Millisecond)))
	m.Update(TickMsg(now.Add(32 * time.Millisecond)))
	if m.Engine().Loop().Ticks() != ticks {
		t.Error("game advanced while the collection was open")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(TickMsg(now.Add(48 * time.Millisecond)))
	if m.Engine().Loop().Ticks() != ticks+1 {
		t.Error("game did not resume after closing the collection")
	}
}

func TestModelQuitRecordsPlayTime(t *testing.T) {
	m, store := newTestModel(t)
	m.Init()

	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}
	if m.Engine().Loop().Running() {
		t.Error("engine still running after quit")
	}
	if store.Snapshot().TotalPlayTime <= 0 {
		t.Error("play time not recorded")
	}
	if m.View() != "" {
		t.Error("view not cleared after quit")
	}
}

func TestModelResize(t *testing.T) {
	m, _ := newTestModel(t)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(TickMsg(time.Now()))

	view := m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 30 {
		t.Errorf("view has %d lines, expected 30", lines)
	}
}

func TestCollectionRows(t *testing.T) {
	store := progress.NewStore(progress.NewMemoryBackend(), log.New(io.Discard))
	store.AddFish("fish_blue")
	store.AddFish("fish_blue")
	store.MarkFishSeen("crab_blue")

	rows := CollectionRows(store)
	if len(rows) != len(fishing.Catalog) {
		t.Fatalf("rows = %d, expected one per catalog entry", len(rows))
	}
	for i, f := range fishing.Catalog {
		row := rows[i]
		switch f.ID {
		case "fish_blue":
			if row[0] != f.Name || row[2] != "2" {
				t.Errorf("fish_blue row = %v", row)
			}
		default:
			if row[0] != "???" || row[2] != "-" {
				t.Errorf("%s row = %v, expected hidden", f.ID, row)
			}
		}
	}
}
