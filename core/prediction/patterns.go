package prediction

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mhoffer/parkcast/core/dataset"
	"github.com/mhoffer/parkcast/core/model"
)

type hourDay struct {
	hour    int
	weekday int
}

type sensorMeans struct {
	proximity  float64
	pressure   float64
	ultrasonic float64
}

type weatherMeans struct {
	temperature   float64
	precipitation float64
}

// patterns are the aggregate tables learned once from the dataset. They
// substitute for data that cannot exist for a future booking: predicted
// traffic, forecast weather, sensor stand-ins.
type patterns struct {
	traffic       map[hourDay]model.TrafficLevel
	trafficByHour map[int]model.TrafficLevel
	sensors       map[int]sensorMeans
	weather       map[int]weatherMeans
}

// learnPatterns derives the historical tables from the dataset. A nil or
// empty table yields nil: the predictor then falls back to fixed defaults.
func learnPatterns(table *dataset.Table) *patterns {
	if table == nil || table.Len() == 0 {
		return nil
	}

	trafficCounts := make(map[hourDay]map[model.TrafficLevel]int)
	hourCounts := make(map[int]map[model.TrafficLevel]int)
	temps := make(map[int][]float64)
	precips := make(map[int][]float64)
	prox := make(map[int][]float64)
	press := make(map[int][]float64)
	ultra := make(map[int][]float64)

	for _, rec := range table.Records() {
		h := rec.Hour
		if rec.Weekday >= 0 {
			key := hourDay{h, rec.Weekday}
			if trafficCounts[key] == nil {
				trafficCounts[key] = make(map[model.TrafficLevel]int)
			}
			trafficCounts[key][rec.TrafficLevel]++
		}
		if hourCounts[h] == nil {
			hourCounts[h] = make(map[model.TrafficLevel]int)
		}
		hourCounts[h][rec.TrafficLevel]++

		temps[h] = append(temps[h], rec.WeatherTemperature)
		precips[h] = append(precips[h], rec.WeatherPrecipitation)
		prox[h] = append(prox[h], rec.SensorProximity)
		press[h] = append(press[h], rec.SensorPressure)
		ultra[h] = append(ultra[h], rec.SensorUltrasonic)
	}

	p := &patterns{
		traffic:       make(map[hourDay]model.TrafficLevel, len(trafficCounts)),
		trafficByHour: make(map[int]model.TrafficLevel, len(hourCounts)),
		sensors:       make(map[int]sensorMeans, len(prox)),
		weather:       make(map[int]weatherMeans, len(temps)),
	}
	for key, counts := range trafficCounts {
		p.traffic[key] = modeLevel(counts)
	}
	for h, counts := range hourCounts {
		p.trafficByHour[h] = modeLevel(counts)
	}
	for h := range temps {
		p.weather[h] = weatherMeans{
			temperature:   stat.Mean(temps[h], nil),
			precipitation: stat.Mean(precips[h], nil),
		}
		p.sensors[h] = sensorMeans{
			proximity:  stat.Mean(prox[h], nil),
			pressure:   stat.Mean(press[h], nil),
			ultrasonic: stat.Mean(ultra[h], nil),
		}
	}
	return p
}

// modeLevel picks the most frequent level; ties resolve to the
// lexicographically smallest so the table is deterministic.
func modeLevel(counts map[model.TrafficLevel]int) model.TrafficLevel {
	levels := make([]model.TrafficLevel, 0, len(counts))
	for lvl := range counts {
		levels = append(levels, lvl)
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i] < levels[j] })
	best := levels[0]
	for _, lvl := range levels[1:] {
		if counts[lvl] > counts[best] {
			best = lvl
		}
	}
	return best
}

// predictTraffic resolves the traffic level for an (hour, weekday) pair:
// exact pair, then the same-hour mode, then Medium.
func (p *patterns) predictTraffic(hour, weekday int) model.TrafficLevel {
	if p == nil {
		return model.TrafficMedium
	}
	if lvl, ok := p.traffic[hourDay{hour, weekday}]; ok {
		return lvl
	}
	if lvl, ok := p.trafficByHour[hour]; ok {
		return lvl
	}
	return model.TrafficMedium
}

// forecast returns the historical-mean weather for the hour, or the fixed
// default when no rows exist for it.
func (p *patterns) forecast(hour int) model.WeatherForecast {
	if p != nil {
		if w, ok := p.weather[hour]; ok {
			f := model.WeatherForecast{Temperature: w.temperature, Source: "historical_average"}
			if w.precipitation > 0.5 {
				f.Precipitation = 1
			}
			return f
		}
	}
	return model.WeatherForecast{Temperature: model.DefaultTemperature, Source: "default"}
}

// sensorAverages returns the hourly sensor stand-ins, or fixed constants.
func (p *patterns) sensorAverages(hour int) sensorMeans {
	if p != nil {
		if s, ok := p.sensors[hour]; ok {
			return s
		}
	}
	return sensorMeans{
		proximity:  model.DefaultProximity,
		pressure:   model.DefaultPressure,
		ultrasonic: model.DefaultUltrasonic,
	}
}
