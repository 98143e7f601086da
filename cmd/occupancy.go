package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	occHour    int
	occSection string
	bookSpot   int
	bookHolder string
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the parking sections and their spots",
	RunE:  showSections,
}

var occupancyCmd = &cobra.Command{
	Use:   "occupancy",
	Short: "Show simulated occupancy per section for an hour",
	RunE:  showOccupancy,
}

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a spot for an hour",
	RunE:  bookSpotRun,
}

func init() {
	occupancyCmd.Flags().IntVar(&occHour, "hour", 12, "hour of day (0-23)")
	occupancyCmd.Flags().StringVar(&occSection, "section", "", "restrict to one section")
	bookCmd.Flags().IntVar(&occHour, "hour", 12, "hour of day (0-23)")
	bookCmd.Flags().StringVar(&occSection, "section", "", "section of the spot")
	bookCmd.Flags().IntVar(&bookSpot, "spot", 0, "spot identifier")
	bookCmd.Flags().StringVar(&bookHolder, "holder", "walk-in", "holder recorded on the booking")
	rootCmd.AddCommand(sectionsCmd, occupancyCmd, bookCmd)
}

func showSections(cmd *cobra.Command, args []string) error {
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	for _, section := range session.Catalog.Sections() {
		spots := session.Catalog.SpotsIn(section)
		stats := session.Catalog.Table().Stats(section)
		fmt.Printf("Section %s: %d spots, historical occupancy %.1f%%\n",
			section, len(spots), stats.OccupancyRate)
	}
	return nil
}

func showOccupancy(cmd *cobra.Command, args []string) error {
	if occHour < 0 || occHour > 23 {
		return fmt.Errorf("hour must be in 0..23, got %d", occHour)
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	sections := session.Catalog.Sections()
	if occSection != "" {
		sections = []string{occSection}
	}
	for _, section := range sections {
		sum := session.Simulator.Occupancy(section, occHour)
		trend := session.Simulator.Trend(section, occHour)
		fmt.Printf("Section %s @ %02d:00 - %.1f%% booked (%d/%d), %s, trend %s\n",
			section, occHour, sum.Percentage, sum.Booked, sum.TotalSpots, sum.Band(), trend)
	}
	return nil
}

func bookSpotRun(cmd *cobra.Command, args []string) error {
	if occSection == "" || bookSpot == 0 {
		return fmt.Errorf("--section and --spot are required")
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	if _, ok := session.Catalog.Spot(bookSpot, occSection); !ok {
		return fmt.Errorf("spot %d not found in section %s", bookSpot, occSection)
	}
	if !session.Simulator.Book(bookSpot, occSection, occHour, bookHolder) {
		fmt.Printf("Spot %d in section %s is already booked at %02d:00\n", bookSpot, occSection, occHour)
		return nil
	}
	fmt.Printf("Booked spot %d in section %s at %02d:00 for %s\n", bookSpot, occSection, occHour, bookHolder)
	return nil
}
