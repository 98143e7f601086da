package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mhoffer/parkcast/core/model"
)

var (
	predSpot    int
	predSection string
	predTime    string
	predVehicle string
	predEV      bool
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict whether a spot will be available at a future time",
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().IntVar(&predSpot, "spot", 0, "spot identifier")
	predictCmd.Flags().StringVar(&predSection, "section", "", "section of the spot")
	predictCmd.Flags().StringVar(&predTime, "time", "", "target time, RFC 3339 (default: in two hours)")
	predictCmd.Flags().StringVar(&predVehicle, "vehicle", string(model.VehicleCar), "vehicle type")
	predictCmd.Flags().BoolVar(&predEV, "ev", false, "vehicle is electric")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	if predSection == "" || predSpot == 0 {
		return fmt.Errorf("--section and --spot are required")
	}
	target := time.Now().Add(2 * time.Hour)
	if predTime != "" {
		var err error
		target, err = time.Parse(time.RFC3339, predTime)
		if err != nil {
			return fmt.Errorf("parse --time: %w", err)
		}
	}

	session, err := newSession()
	if err != nil {
		return err
	}
	defer session.Close()

	pred, err := session.Predictor.Predict(model.PredictRequest{
		SpotID:      predSpot,
		Section:     predSection,
		Target:      target,
		VehicleType: model.VehicleType(predVehicle),
		IsEV:        predEV,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Spot %d, section %s at %s\n", predSpot, predSection, target.Format("Mon 15:04"))
	fmt.Printf("  %s (%.0f%% chance of being vacant)\n", pred.Recommendation, pred.ProbabilityVacant*100)
	fmt.Printf("  Weather: %s - %s\n", pred.Insights.Weather.Status, pred.Insights.Weather.Tip)
	fmt.Printf("  Traffic: %s - %s\n", pred.Insights.Traffic.Status, pred.Insights.Traffic.Tip)
	fmt.Printf("  Timing:  %s - %s\n", pred.Insights.TimePattern.Pattern, pred.Insights.TimePattern.Tip)
	fmt.Printf("  Fit:     %s\n", pred.Insights.Compatibility.Tip)
	if pred.Insights.Spot.Tip != "" {
		fmt.Printf("  Spot:    %s\n", pred.Insights.Spot.Tip)
	}
	return nil
}
