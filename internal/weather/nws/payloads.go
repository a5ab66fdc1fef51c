package nws

import (
	"time"

	"github.com/wesellis/WeatherStar-4000-Python/internal/weather"
)

// quantity is the {"unitCode": ..., "value": ...} shape; value may be null.
type quantity struct {
	UnitCode string   `json:"unitCode"`
	Value    *float64 `json:"value"`
}

type pointResponse struct {
	Properties struct {
		GridID              string `json:"gridId"`
		GridX               int    `json:"gridX"`
		GridY               int    `json:"gridY"`
		ObservationStations string `json:"observationStations"`
		RadarStation        string `json:"radarStation"`
		TimeZone            string `json:"timeZone"`
		RelativeLocation    struct {
			Properties struct {
				City  string `json:"city"`
				State string `json:"state"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

func (p pointResponse) toGridPoint() weather.GridPoint {
	props := p.Properties
	return weather.GridPoint{
		Office:                 props.GridID,
		GridX:                  props.GridX,
		GridY:                  props.GridY,
		ObservationStationsURL: props.ObservationStations,
		City:                   props.RelativeLocation.Properties.City,
		State:                  props.RelativeLocation.Properties.State,
		RadarStation:           props.RadarStation,
		TimeZone:               props.TimeZone,
	}
}

type stationsResponse struct {
	Features []struct {
		Properties struct {
			StationIdentifier string `json:"stationIdentifier"`
			Name              string `json:"name"`
		} `json:"properties"`
	} `json:"features"`
}

func (s stationsResponse) toStations() []weather.Station {
	out := make([]weather.Station, 0, len(s.Features))
	for _, f := range s.Features {
		if f.Properties.StationIdentifier == "" {
			continue
		}
		out = append(out, weather.Station{
			ID:   f.Properties.StationIdentifier,
			Name: f.Properties.Name,
		})
	}
	return out
}

type observationResponse struct {
	Properties struct {
		Timestamp          time.Time `json:"timestamp"`
		TextDescription    string    `json:"textDescription"`
		Icon               *string   `json:"icon"`
		Temperature        quantity  `json:"temperature"`
		Dewpoint           quantity  `json:"dewpoint"`
		WindDirection      quantity  `json:"windDirection"`
		WindSpeed          quantity  `json:"windSpeed"`
		WindGust           quantity  `json:"windGust"`
		BarometricPressure quantity  `json:"barometricPressure"`
		Visibility         quantity  `json:"visibility"`
		RelativeHumidity   quantity  `json:"relativeHumidity"`
		HeatIndex          quantity  `json:"heatIndex"`
		WindChill          quantity  `json:"windChill"`
		CloudLayers        []struct {
			Base   quantity `json:"base"`
			Amount string   `json:"amount"`
		} `json:"cloudLayers"`
	} `json:"properties"`
}

func (o observationResponse) toObservation() weather.Observation {
	p := o.Properties
	obs := weather.Observation{
		Timestamp:        p.Timestamp,
		Description:      p.TextDescription,
		Temperature:      p.Temperature.Value,
		Dewpoint:         p.Dewpoint.Value,
		WindDirection:    p.WindDirection.Value,
		WindSpeed:        p.WindSpeed.Value,
		WindGust:         p.WindGust.Value,
		Pressure:         p.BarometricPressure.Value,
		Visibility:       p.Visibility.Value,
		RelativeHumidity: p.RelativeHumidity.Value,
		HeatIndex:        p.HeatIndex.Value,
		WindChill:        p.WindChill.Value,
	}
	if p.Icon != nil {
		obs.IconURL = *p.Icon
	}
	for _, l := range p.CloudLayers {
		obs.CloudLayers = append(obs.CloudLayers, weather.CloudLayer{Amount: l.Amount, BaseM: l.Base.Value})
	}
	return obs
}

type forecastResponse struct {
	Properties struct {
		Periods []struct {
			Number                     int       `json:"number"`
			Name                       string    `json:"name"`
			StartTime                  time.Time `json:"startTime"`
			EndTime                    time.Time `json:"endTime"`
			IsDaytime                  bool      `json:"isDaytime"`
			Temperature                *float64  `json:"temperature"`
			TemperatureUnit            string    `json:"temperatureUnit"`
			ProbabilityOfPrecipitation quantity  `json:"probabilityOfPrecipitation"`
			WindSpeed                  string    `json:"windSpeed"`
			WindDirection              string    `json:"windDirection"`
			Icon                       string    `json:"icon"`
			ShortForecast              string    `json:"shortForecast"`
			DetailedForecast           string    `json:"detailedForecast"`
		} `json:"periods"`
	} `json:"properties"`
}

func (f forecastResponse) toPeriods() []weather.ForecastPeriod {
	out := make([]weather.ForecastPeriod, 0, len(f.Properties.Periods))
	for _, p := range f.Properties.Periods {
		out = append(out, weather.ForecastPeriod{
			Number:              p.Number,
			Name:                p.Name,
			StartTime:           p.StartTime,
			EndTime:             p.EndTime,
			IsDaytime:           p.IsDaytime,
			Temperature:         p.Temperature,
			TemperatureUnit:     p.TemperatureUnit,
			PrecipitationChance: p.ProbabilityOfPrecipitation.Value,
			WindSpeed:           p.WindSpeed,
			WindDirection:       p.WindDirection,
			IconURL:             p.Icon,
			ShortForecast:       p.ShortForecast,
			DetailedForecast:    p.DetailedForecast,
		})
	}
	return out
}

type alertsResponse struct {
	Features []struct {
		Properties struct {
			AtID     string    `json:"@id"`
			ID       string    `json:"id"`
			Event    string    `json:"event"`
			Headline string    `json:"headline"`
			Severity string    `json:"severity"`
			Expires  time.Time `json:"expires"`
		} `json:"properties"`
	} `json:"features"`
}

func (a alertsResponse) toAlerts() []weather.Alert {
	out := make([]weather.Alert, 0, len(a.Features))
	for _, f := range a.Features {
		p := f.Properties
		out = append(out, weather.Alert{
			ID:       p.ID,
			Event:    p.Event,
			Headline: p.Headline,
			Severity: p.Severity,
			URL:      p.AtID,
			Expires:  p.Expires,
		})
	}
	return out
}
