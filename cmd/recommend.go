package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	recSection string
	recHour    int
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Check whether a quieter section should be suggested",
	RunE:  runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recSection, "section", "", "section the user is looking at")
	recommendCmd.Flags().IntVar(&recHour, "hour", 12, "hour of day (0-23)")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	if recSection == "" {
		return fmt.Errorf("--section is required")
	}
	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	sug := session.Recommender.Suggest(recSection, recHour)
	if sug == nil {
		sum := session.Simulator.Occupancy(recSection, recHour)
		fmt.Printf("Section %s is %.1f%% booked at %02d:00; no switch suggested\n",
			recSection, sum.Percentage, recHour)
		return nil
	}
	fmt.Printf("Section %s is %.1f%% booked; section %s is quieter (%.1f%%, gap %.1f points)\n",
		sug.FromSection, sug.Current.Percentage, sug.ToSection, sug.Target.Percentage, sug.Gap())
	fmt.Printf("Try spot %d (%.1fm from exit)\n", sug.Spot, sug.DistanceToExit)
	return nil
}
