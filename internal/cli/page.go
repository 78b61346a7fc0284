// Package cli assembles the demo page shared by the run and serve
// commands: a simulated surface with a hero panel and a column of
// revealable sections, wired to a fully initialized kinetic.Page.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/aretw0/kinetic"
	"github.com/aretw0/kinetic/internal/presentation/tui"
	"github.com/aretw0/kinetic/pkg/adapters/mailto"
	"github.com/aretw0/kinetic/pkg/adapters/memory"
	"github.com/aretw0/kinetic/pkg/adapters/sim"
	"github.com/aretw0/kinetic/pkg/adapters/yamlscript"
	"github.com/aretw0/kinetic/pkg/domain"
	"github.com/aretw0/kinetic/pkg/ports"
)

// DemoDocHeight is the virtual document height of the demo page.
const DemoDocHeight = 2400

// DemoViewport is the virtual viewport height of the demo page.
const DemoViewport = 600

// DemoBlocks returns the demo page's revealable sections.
func DemoBlocks() []tui.Block {
	return []tui.Block{
		{Ref: "about", Title: "About", Body: "A small studio doing deliberate work."},
		{Ref: "work", Title: "Selected Work", Body: "Projects, case studies, experiments."},
		{Ref: "process", Title: "Process", Body: "Research, prototype, refine, ship."},
		{Ref: "testimonials", Title: "Kind Words", Body: "What clients say after launch."},
		{Ref: "contact", Title: "Contact", Body: "Press c to start an inquiry."},
	}
}

// NewDemoSurface builds the simulated page: a hero at the top, then the
// revealable sections spaced down the document.
func NewDemoSurface(reducedMotion bool) *sim.Page {
	page := sim.NewPage(DemoViewport)
	page.SetReducedMotion(reducedMotion)
	page.AddElement("hero", 0, DemoViewport, false)
	for i, blk := range DemoBlocks() {
		page.AddElement(blk.Ref, float64(500+i*400), 240, true)
	}
	return page
}

// ScriptLoader picks the YAML source when a path is given, otherwise the
// built-in default script.
func ScriptLoader(path string) ports.ScriptLoader {
	if path != "" {
		return yamlscript.NewSource(path)
	}
	return memory.NewScriptSource(memory.DefaultScript())
}

// BuildPage wires a kinetic.Page over the demo surface and initializes it.
func BuildPage(ctx context.Context, surface *sim.Page, view *sim.View, scriptPath string, hooks domain.LifecycleHooks, logger *slog.Logger) (*kinetic.Page, error) {
	page, err := kinetic.New(surface,
		kinetic.WithScript(ScriptLoader(scriptPath)),
		kinetic.WithDialogView(view),
		kinetic.WithTransport(mailto.New(nil)),
		kinetic.WithLifecycleHooks(hooks),
		kinetic.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if err := page.Init(ctx); err != nil {
		return nil, fmt.Errorf("page initialization failed: %w", err)
	}
	return page, nil
}

// TerminalWidth returns the stdout width, or a sensible fallback when not
// attached to a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
