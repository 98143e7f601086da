package prediction

import (
	"fmt"
	"strings"

	"github.com/mhoffer/parkcast/core/model"
)

// Recommendation tier thresholds on the vacant probability.
const (
	tierHighlyRecommended = 0.70
	tierRecommended       = 0.55
	tierUncertain         = 0.45
)

// recommendationText builds the tiered recommendation string. Contextual
// clauses are additive and order-stable: advance notice, peak hour,
// weather, traffic, size compatibility.
func recommendationText(probVacant float64, hour int, forecast model.WeatherForecast, traffic model.TrafficLevel, compatible bool, hoursUntil float64) string {
	var b strings.Builder
	switch {
	case probVacant > tierHighlyRecommended:
		b.WriteString("HIGHLY RECOMMENDED - Good availability expected")
	case probVacant > tierRecommended:
		b.WriteString("RECOMMENDED - Likely available")
	case probVacant > tierUncertain:
		b.WriteString("UNCERTAIN - Consider alternatives")
	default:
		b.WriteString("NOT RECOMMENDED - Likely occupied, check alternatives")
	}

	if hoursUntil > 24 {
		fmt.Fprintf(&b, " (Booking %.0fh in advance)", hoursUntil)
	} else if hoursUntil > 2 {
		fmt.Fprintf(&b, " (Booking %.1fh ahead)", hoursUntil)
	}

	if isPeak(hour) {
		b.WriteString(" (Peak hour)")
	}

	if forecast.Temperature > 30 {
		b.WriteString(" - Hot weather forecast, covered spots recommended")
	} else if forecast.Temperature < 5 {
		b.WriteString(" - Cold weather forecast, covered spots recommended")
	}
	if forecast.Precipitation > 0 {
		b.WriteString(" - Rain expected, covered parking essential")
	}

	if traffic == model.TrafficHigh {
		b.WriteString(" - High traffic expected")
	}

	if !compatible {
		b.WriteString(" - Warning: Spot size may not match your vehicle")
	}
	return b.String()
}

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type insightInput struct {
	hour            int
	weekday         int
	traffic         model.TrafficLevel
	forecast        model.WeatherForecast
	spot            model.Spot
	found           bool
	hoursUntil      float64
	compatible      bool
	recommendedSize model.SpotSize
}

func buildInsights(in insightInput) model.Insights {
	return model.Insights{
		Weather:       weatherInsight(in.forecast),
		Traffic:       trafficInsight(in.traffic),
		TimePattern:   timePatternInsight(in.hour, in.weekday, in.hoursUntil),
		Compatibility: compatibilityInsight(in.compatible, in.recommendedSize, in.spot.Size),
		Spot:          spotInsight(in.spot.DistanceToExit),
	}
}

func weatherInsight(f model.WeatherForecast) model.WeatherInsight {
	var status, tip string
	switch {
	case f.Temperature > 30:
		status = fmt.Sprintf("Hot (%.0f°C forecast)", f.Temperature)
		tip = "Shaded or covered parking recommended"
	case f.Temperature < 10:
		status = fmt.Sprintf("Cold (%.0f°C forecast)", f.Temperature)
		tip = "Covered parking recommended"
	default:
		status = fmt.Sprintf("Pleasant (%.0f°C forecast)", f.Temperature)
		tip = "Good parking conditions expected"
	}
	if f.Precipitation > 0 {
		status += ", Rain expected"
		tip = "Covered parking strongly recommended"
	}
	return model.WeatherInsight{
		Temperature:   f.Temperature,
		Precipitation: f.Precipitation,
		Status:        status,
		Tip:           tip,
		Source:        f.Source,
	}
}

func trafficInsight(level model.TrafficLevel) model.TrafficInsight {
	var tip string
	switch level {
	case model.TrafficHigh:
		tip = "High traffic expected - spot may fill quickly"
	case model.TrafficLow:
		tip = "Low traffic expected - easy access"
	default:
		tip = "Moderate traffic expected"
	}
	return model.TrafficInsight{
		Level:  level,
		Status: fmt.Sprintf("%s traffic predicted", level),
		Tip:    tip,
		Source: "historical_pattern",
	}
}

func timePatternInsight(hour, weekday int, hoursUntil float64) model.TimePatternInsight {
	var pattern, tip string
	switch {
	case hour >= 8 && hour <= 10:
		pattern, tip = "Morning Rush", "High demand period"
	case hour >= 17 && hour <= 19:
		pattern, tip = "Evening Rush", "High demand period"
	case hour >= 11 && hour <= 16:
		pattern, tip = "Midday", "Moderate demand"
	default:
		pattern, tip = "Off-Peak", "Low demand, good availability"
	}
	day := ""
	if weekday >= 0 && weekday < len(dayNames) {
		day = dayNames[weekday]
	}
	return model.TimePatternInsight{
		Pattern:    pattern,
		Hour:       hour,
		Day:        day,
		Tip:        tip,
		HoursUntil: hoursUntil,
	}
}

func compatibilityInsight(compatible bool, recommended, actual model.SpotSize) model.CompatibilityInsight {
	tip := "Good match for your vehicle"
	if !compatible {
		tip = fmt.Sprintf("Your vehicle needs %s spot", recommended)
	}
	return model.CompatibilityInsight{
		Compatible:      compatible,
		RecommendedSize: recommended,
		SpotSize:        actual,
		Tip:             tip,
	}
}

func spotInsight(distance float64) model.SpotInsight {
	tip := fmt.Sprintf("%.1fm from exit", distance)
	if distance < 10 {
		tip = fmt.Sprintf("Only %.1fm from exit", distance)
	}
	return model.SpotInsight{DistanceToExit: distance, Tip: tip}
}
