package export

import (
	"fmt"
	"strings"

	"worktrack/internal/models"
)

const ticketRule = "═══════════════════════════════════════"

// ETicket: текстовый e-ticket по решённой заявке.
func ETicket(i models.IssueReport) string {
	var b strings.Builder
	b.WriteString(ticketRule + "\n")
	b.WriteString("        E-TICKET - ISSUE RESOLVED\n")
	b.WriteString(ticketRule + "\n\n")
	fmt.Fprintf(&b, "Ticket Number: %s\n", i.TicketNumber)
	fmt.Fprintf(&b, "Title: %s\n", i.Title)
	fmt.Fprintf(&b, "Category: %s\n", i.Category)
	fmt.Fprintf(&b, "Priority: %s\n", i.Priority)
	fmt.Fprintf(&b, "Status: %s\n\n", strings.ReplaceAll(string(i.Status), "_", " "))
	fmt.Fprintf(&b, "Reported: %s\n", DateTime(i.CreatedAt))
	if i.ResolvedAt != nil {
		fmt.Fprintf(&b, "Resolved: %s\n", DateTime(*i.ResolvedAt))
	}
	fmt.Fprintf(&b, "\nDescription:\n%s\n", i.Description)
	if i.ResolutionNotes != "" {
		fmt.Fprintf(&b, "\nResolution:\n%s\n", i.ResolutionNotes)
	}
	b.WriteString("\n" + ticketRule + "\n")
	b.WriteString("    IT Department - Work Tracker\n")
	b.WriteString(ticketRule + "\n")
	return b.String()
}

func TicketFileName(i models.IssueReport) string { return i.TicketNumber + ".txt" }
