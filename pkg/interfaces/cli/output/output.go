// Package output renders engine results for the terminal. Tables are the
// default; -format json emits a machine-readable report instead.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/smartchain/surplusnet/pkg/application/dto"
	"github.com/smartchain/surplusnet/pkg/domain/entities"
	"github.com/smartchain/surplusnet/pkg/infrastructure/events"
)

// RenderSurplus prints available surplus listings
func RenderSurplus(w io.Writer, items []*entities.SurplusItem) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Surplus Listings")
	t.AppendHeader(table.Row{"ID", "Location", "Product", "Category", "Qty", "Unit Price", "Condition", "Status"})
	for _, item := range items {
		t.AppendRow(table.Row{
			shortID(item.ID),
			item.LocationID,
			item.ProductName,
			item.Category,
			item.QuantityAvailable,
			"$" + item.UnitPrice.StringFixed(2),
			item.Condition.String(),
			item.Status.String(),
		})
	}
	t.Render()
}

// RenderNeeds prints outstanding needs
func RenderNeeds(w io.Writer, needs []*entities.Need) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Needs")
	t.AppendHeader(table.Row{"ID", "Location", "Category", "Qty", "Urgency", "Max Price", "Status"})
	for _, need := range needs {
		maxPrice := "-"
		if need.MaxPrice != nil {
			maxPrice = "$" + need.MaxPrice.StringFixed(2)
		}
		t.AppendRow(table.Row{
			shortID(need.ID),
			need.LocationID,
			need.Category,
			need.QuantityNeeded,
			need.Urgency.String(),
			maxPrice,
			need.Status.String(),
		})
	}
	t.Render()
}

// RenderMatches prints the match set, best score first
func RenderMatches(w io.Writer, matches []*entities.Match) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Matches")
	t.AppendHeader(table.Row{"ID", "From", "To", "Score", "Est. Savings", "Distance", "Status"})
	for _, m := range matches {
		t.AppendRow(table.Row{
			shortID(m.ID),
			m.FromLocation,
			m.ToLocation,
			fmt.Sprintf("%.3f", m.Score),
			"$" + m.EstimatedSavings.StringFixed(2),
			fmt.Sprintf("%.0f mi", m.Distance),
			m.Status.String(),
		})
	}
	t.Render()
}

// RenderActions prints the recommended action queue in priority order
func RenderActions(w io.Writer, actions []entities.RecommendedAction) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Recommended Actions")
	t.AppendHeader(table.Row{"Priority", "Kind", "Title", "Savings", "Time Saved", "Efficiency"})
	for _, a := range actions {
		t.AppendRow(table.Row{
			a.Priority.String(),
			a.Kind.String(),
			a.Title,
			"$" + a.Impact.CostSavings.StringFixed(2),
			fmt.Sprintf("%.0fh", a.Impact.TimeSavingsHours),
			fmt.Sprintf("%.0f%%", a.Impact.EfficiencyGain*100),
		})
	}
	t.Render()
}

// RenderConnections prints the accumulated transfer history per pair
func RenderConnections(w io.Writer, conns []*entities.Connection) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Connections")
	t.AppendHeader(table.Row{"Pair", "Transfers", "Total Value", "Trust"})
	for _, c := range conns {
		t.AppendRow(table.Row{
			fmt.Sprintf("%s <-> %s", c.LocationA, c.LocationB),
			c.TotalTransfers,
			"$" + c.TotalValue.StringFixed(2),
			fmt.Sprintf("%.1f", c.TrustScore),
		})
	}
	t.Render()
}

// RenderNotifications prints a location's notification feed, newest first
func RenderNotifications(w io.Writer, locationID entities.LocationID, notifs []*entities.Notification) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("Notifications: %s", locationID))
	t.AppendHeader(table.Row{"Priority", "Type", "Title", "Message", "Read"})
	for _, n := range notifs {
		t.AppendRow(table.Row{
			n.Priority.String(),
			n.Type.String(),
			n.Title,
			n.Message,
			n.Read,
		})
	}
	t.Render()
}

// RenderJournal prints the engine's event journal in append order
func RenderJournal(w io.Writer, journal []events.Event) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Run Journal")
	t.AppendHeader(table.Row{"Time", "Event", "Stream", "Version"})
	for _, e := range journal {
		t.AppendRow(table.Row{
			e.Timestamp().Format("15:04:05.000"),
			e.Type(),
			shortID(e.StreamID()),
			e.Version(),
		})
	}
	t.Render()
}

// RenderAnalytics prints network-wide figures
func RenderAnalytics(w io.Writer, a *dto.NetworkAnalytics) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Network Analytics")
	t.AppendRow(table.Row{"Active Listings", a.ActiveListings})
	t.AppendRow(table.Row{"Active Needs", a.ActiveNeeds})
	t.AppendRow(table.Row{"Total Surplus Value", "$" + a.TotalSurplusValue.StringFixed(2)})
	t.AppendRow(table.Row{"Total Transfers", a.TotalTransfers})
	t.AppendRow(table.Row{"Total Transferred Value", "$" + a.TotalTransferredValue.StringFixed(2)})
	t.AppendRow(table.Row{"Average Trust Score", fmt.Sprintf("%.2f", a.AverageTrustScore)})
	t.AppendRow(table.Row{"Connected Pairs", a.ConnectedPairs})
	t.Render()
}

// Report bundles one run's results for JSON output
type Report struct {
	Surplus     []*entities.SurplusItem      `json:"surplus"`
	Needs       []*entities.Need             `json:"needs"`
	Matches     []*entities.Match            `json:"matches"`
	Actions     []entities.RecommendedAction `json:"actions"`
	Connections []*entities.Connection       `json:"connections"`
	Analytics   *dto.NetworkAnalytics        `json:"analytics"`
}

// WriteJSON emits the report as indented JSON
func WriteJSON(w io.Writer, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// shortID trims UUIDs to their first group for table display
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 && len(id) == 36 {
		return id[:i]
	}
	return id
}
