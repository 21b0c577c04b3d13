package dialog

import (
	stderrors "errors"

	"weatherdialog.app/pkg/errors"
)

// Error dialog names
const (
	LocationNotFound   = "location.not.found"
	NoForecast         = "no.forecast"
	HistoricalForecast = "cant.get.historical.forecast"
	NotPaired          = "not.paired"
	CantGetForecast    = "cant.get.forecast"
	DoNotKnow          = "do.not.know"
)

// ForError picks the dialog that tells the user why a request failed
func ForError(err error) Dialog {
	data := map[string]interface{}{}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return Dialog{Name: CantGetForecast, Data: data}
	}

	switch appErr.Type {
	case errors.LocationNotFoundError:
		if location, ok := appErr.Details["location"]; ok {
			data["location"] = location
		}
		return Dialog{Name: LocationNotFound, Data: data}
	case errors.HorizonExceededError:
		if day, ok := appErr.Details["day"]; ok {
			data["day"] = day
		}
		return Dialog{Name: NoForecast, Data: data}
	case errors.HistoricalDateError:
		return Dialog{Name: HistoricalForecast, Data: data}
	case errors.ProviderAuthError:
		return Dialog{Name: NotPaired, Data: data}
	case errors.MissingDataError:
		return Dialog{Name: DoNotKnow, Data: data}
	default:
		return Dialog{Name: CantGetForecast, Data: data}
	}
}
