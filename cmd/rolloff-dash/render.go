package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"cloud.google.com/go/civil"
	"github.com/BearBump/RollOff/internal/models"
	"github.com/BearBump/RollOff/internal/services/liststate"
)

var ansi = map[string]string{
	"green":  "\x1b[32m",
	"blue":   "\x1b[34m",
	"violet": "\x1b[35m",
	"orange": "\x1b[33m",
	"gray":   "\x1b[90m",
}

const ansiReset = "\x1b[0m"

func statusLabel(s models.Status, color bool) string {
	if !color {
		return string(s)
	}
	return ansi[s.Color()] + string(s) + ansiReset
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func dateOrDash(d *civil.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func tabLabel(name string, n int, current bool) string {
	label := fmt.Sprintf("%s (%d)", name, n)
	if current {
		return "[" + label + "]"
	}
	return label
}

// renderContainers печатает вкладки с количеством и выбранную вкладку таблицей.
func renderContainers(w io.Writer, snap liststate.ContainerSnapshot, customers liststate.CustomerLookup, color bool) {
	archived := snap.Tab == liststate.TabArchived
	fmt.Fprintf(w, "%s  %s\n", tabLabel("Active", len(snap.Active), !archived), tabLabel("Archive", len(snap.Archived), archived))
	if snap.Query != "" || snap.Status != models.StatusAll {
		fmt.Fprintf(w, "filter: %q status=%s\n", snap.Query, snap.Status)
	}

	if len(snap.View) == 0 {
		fmt.Fprintln(w, "no containers")
		return
	}

	tw := newTable(w)
	if archived {
		fmt.Fprintln(tw, "NUMBER\tSTATUS\tLOCATION\tCONTENTS\tWEIGHT\tDUMPED\tUPDATED\t")
	} else {
		fmt.Fprintln(tw, "NUMBER\tSTATUS\tLOCATION\tCONTENTS\tCUSTOMER\tDROPPED\tUPDATED\t")
	}
	for _, c := range snap.View {
		updated := "-"
		if !c.LastUpdated.IsZero() {
			updated = c.LastUpdated.Local().Format("2006-01-02 15:04")
			if c.UpdatedBy != "" {
				updated += " by " + c.UpdatedBy
			}
		}
		if archived {
			weight := "-"
			if c.Weight != nil {
				weight = strconv.FormatFloat(*c.Weight, 'f', 1, 64) + " t"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				c.ID, statusLabel(c.Status, color), orDash(c.Location), orDash(c.Contents),
				weight, dateOrDash(c.DateDumped), updated)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			c.ID, statusLabel(c.Status, color), orDash(c.Location), orDash(c.Contents),
			customerLabel(c.CurrentCustomerID, customers), dateOrDash(c.DateDropped), updated)
	}
	_ = tw.Flush()
}

func customerLabel(id *int64, customers liststate.CustomerLookup) string {
	if id == nil {
		return "-"
	}
	if customers != nil {
		if cu, ok := customers.Find(*id); ok {
			return cu.Name
		}
	}
	return "#" + strconv.FormatInt(*id, 10)
}

func renderCustomers(w io.Writer, items []models.Customer) {
	if len(items) == 0 {
		fmt.Fprintln(w, "no customers")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS\tPHONE\tJOB SITE\tCONTAINERS\t")
	for _, c := range items {
		ids := make([]string, 0, len(c.CurrentContainers))
		for _, ct := range c.CurrentContainers {
			ids = append(ids, ct.ID)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			c.ID, c.Name, orDash(c.Address), orDash(c.Phone), orDash(c.JobSiteInfo), orDash(strings.Join(ids, ", ")))
	}
	_ = tw.Flush()
}

func renderLog(w io.Writer, rows []liststate.LogRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "no log entries")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tACTION\tCONTAINER\tCUSTOMER\tNOTES\t")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
			r.Entry.Timestamp.Local().Format("2006-01-02 15:04"), r.Entry.Action,
			r.ContainerLabel, r.CustomerName, orDash(r.Entry.Notes))
	}
	_ = tw.Flush()
}
