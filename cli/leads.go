// ABOUTME: Lead CLI commands
// ABOUTME: Human-friendly commands for listing and capturing leads
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/oakfield/hearth/store"
)

// ListLeadsCommand prints the lead book, newest first.
func ListLeadsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("leads-list", flag.ExitOnError)
	role := fs.String("role", "", "Filter by role (buyer/seller)")
	stage := fs.String("stage", "", "Filter by stage (hot/warm/cold/instructed/completed)")
	limit := fs.Int("limit", 50, "Maximum leads to show")
	_ = fs.Parse(args)

	result, err := st.ViewLeads(*role, *stage, *limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tROLE\tSTAGE\tCREATED\tVIEWINGS")
	for _, lead := range result.Leads {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			lead.ClientID, lead.FullName, lead.Role, lead.Stage, lead.CreatedAt, len(lead.Viewings))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d leads (%d buyers, %d sellers, %d hot)\n",
		len(result.Leads), result.TotalCount,
		result.Summary.Buyers, result.Summary.Sellers, result.Summary.HotLeads)
	return nil
}

// AddLeadCommand captures a new lead from flags.
func AddLeadCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("leads-add", flag.ExitOnError)
	name := fs.String("name", "", "Full name (required)")
	email := fs.String("email", "", "Email address")
	mobile := fs.String("mobile", "", "Mobile number")
	role := fs.String("role", "", "Role: buyer or seller (required)")
	source := fs.String("source", "", "Lead source")
	stage := fs.String("stage", "", "Stage (default warm)")
	budget := fs.Int("budget", 0, "Buyer's maximum budget in GBP")
	minBeds := fs.Int("min-bedrooms", 0, "Buyer's minimum bedrooms")
	sellingID := fs.String("selling-property", "", "Seller's property ID")
	asking := fs.Int("asking-price", 0, "Seller's asking price in GBP")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	if *role == "" {
		return fmt.Errorf("--role is required")
	}

	in := store.LeadInput{
		FullName:          *name,
		Email:             *email,
		Mobile:            *mobile,
		Role:              *role,
		LeadSource:        *source,
		Stage:             *stage,
		SellingPropertyID: *sellingID,
	}
	if *budget > 0 {
		in.BudgetMax = budget
	}
	if *minBeds > 0 {
		in.MinBedrooms = minBeds
	}
	if *asking > 0 {
		in.AskingPrice = asking
	}

	client, err := st.CaptureLead(in)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Lead captured: %s (ID: %s, %s, stage %s)\n",
		client.FullName, client.ClientID, client.Role, client.Stage)
	return nil
}
