// ABOUTME: Listing CLI commands
// ABOUTME: Search listings and compute average prices from the terminal
package cli

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/oakfield/hearth/store"
)

// SearchListingsCommand queries listings with the same filters the MCP
// tool exposes.
func SearchListingsCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("listings-search", flag.ExitOnError)
	postcode := fs.String("postcode", "", "Postcode prefix (e.g. LE65)")
	propertyType := fs.String("type", "", "Property type substring (e.g. flat)")
	maxPrice := fs.Int("max-price", 0, "Maximum price in GBP")
	minBedrooms := fs.Int("min-bedrooms", 0, "Minimum bedrooms")
	garden := fs.Bool("garden", false, "Require a garden")
	parking := fs.Bool("parking", false, "Require parking")
	limit := fs.Int("limit", 10, "Maximum results")
	_ = fs.Parse(args)

	filters := store.ListingFilters{
		Postcode:     *postcode,
		PropertyType: *propertyType,
	}
	if *maxPrice > 0 {
		filters.MaxPrice = maxPrice
	}
	if *minBedrooms > 0 {
		filters.MinBedrooms = minBedrooms
	}
	// Only constrain the flags the caller actually set.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "garden":
			filters.HasGarden = garden
		case "parking":
			filters.HasParking = parking
		}
	})

	result := st.QueryListings(filters, *limit)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRICE\tBEDS\tTYPE\tPOSTCODE\tSTATUS")
	for _, l := range result.Matches {
		price := "POA"
		if l.PriceAmount != nil {
			price = fmt.Sprintf("£%d", *l.PriceAmount)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			l.PropertyID, price, l.Bedrooms, l.PropertyType, l.Postcode, l.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d found, showing %d\n", result.TotalCount, len(result.Matches))
	return nil
}

// AveragePriceCommand prints the average price for an area or type.
func AveragePriceCommand(st *store.Store, args []string) error {
	fs := flag.NewFlagSet("listings-avg", flag.ExitOnError)
	postcode := fs.String("postcode", "", "Postcode prefix (e.g. LE65)")
	propertyType := fs.String("type", "", "Property type substring (e.g. flat)")
	_ = fs.Parse(args)

	avg, count := st.AveragePrice(*postcode, *propertyType)
	if count == 0 {
		fmt.Println("No listings found matching criteria.")
		return nil
	}

	fmt.Printf("Average price over %d listings: £%.2f\n", count, *avg)
	return nil
}
