package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/themizzi/saucecheck/internal/models"
	"github.com/themizzi/saucecheck/internal/services"
)

// RunDependencies holds everything needed to run checks
type RunDependencies struct {
	Service services.CheckService
	Out     io.Writer
}

// RunChecks runs the named checks (all when names is empty) and prints one
// line per result. It returns an error when any check failed.
func RunChecks(ctx context.Context, deps RunDependencies, names []string) error {
	report, err := deps.Service.Run(ctx, names...)
	if report != nil {
		PrintReport(deps.Out, report)
	}
	if err != nil {
		return err
	}

	if failed := report.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d checks failed: %w", len(failed), len(report.Results), report.Err())
	}
	return nil
}

// PrintReport writes one line per check result
func PrintReport(w io.Writer, report *services.Report) {
	for _, res := range report.Results {
		if res.Passed() {
			fmt.Fprintf(w, "PASS  %-10s %s\n", res.Check, res.Duration.Round(time.Millisecond))
			continue
		}
		fmt.Fprintf(w, "FAIL  %-10s %s  %v\n", res.Check, res.Duration.Round(time.Millisecond), res.Err)
	}
}

// PrintChecks lists the available checks
func PrintChecks(w io.Writer, checks []services.Check) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range checks {
		fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Description)
	}
	return tw.Flush()
}

// PrintCatalog writes the catalog with the control ids derived for each product
func PrintCatalog(w io.Writer, catalog *models.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tADD CONTROL\tREMOVE CONTROL")
	for _, p := range catalog.Products() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.BaseID, p.Title, p.Price.Display(), p.AddControlID(), p.RemoveControlID())
	}
	return tw.Flush()
}

// PrintDescriptor parses a control id and writes what it refers to
func PrintDescriptor(w io.Writer, catalog *models.Catalog, rawID string) error {
	desc, err := models.ParseButtonID(rawID)
	if err != nil {
		return err
	}

	action := "add"
	if desc.CanRemove {
		action = "remove"
	}
	fmt.Fprintf(w, "id:      %s\naction:  %s\nproduct: %s\ntoggles: %s\n", desc.RawID, action, desc.BaseID, desc.ToggledID())

	p, err := catalog.Lookup(desc.BaseID)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "title:   %s\nprice:   %s\n", p.Title, p.Price.Display())
	return nil
}

// WithShutdownSignals returns a context cancelled on the first SIGINT or SIGTERM.
// If shutdown is nil, a new channel is created and registered with signal.Notify.
func WithShutdownSignals(parent context.Context, shutdown chan os.Signal, log *zap.Logger) (context.Context, context.CancelFunc) {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(parent)
	go func() {
		select {
		case sig := <-shutdown:
			log.Warn("received signal, stopping checks", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(shutdown)
	}()

	return ctx, cancel
}
