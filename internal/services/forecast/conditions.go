package forecast

// Condition labels produced from WMO weather codes. They are the labels the
// accessory rules match against, so spelling and case are significant.
const (
	ConditionSunny   = "Sunny"
	ConditionCloudy  = "Cloudy"
	ConditionFoggy   = "Foggy"
	ConditionRainy   = "Rainy"
	ConditionSnowy   = "Snowy"
	ConditionStormy  = "Stormy"
	ConditionUnknown = "Unknown"
)

func conditionForCode(code int) string {
	switch {
	case code == 0 || code == 1:
		return ConditionSunny
	case code == 2 || code == 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFoggy
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRainy
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnowy
	case code >= 95 && code <= 99:
		return ConditionStormy
	default:
		return ConditionUnknown
	}
}
