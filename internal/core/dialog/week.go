package dialog

import (
	"strings"

	"weatherdialog.app/internal/core/forecast"
)

// WeekSummary gives an overview of the given days instead of a forecast per
// day: the prevailing condition, the other conditions and when they occur,
// then the range of temperatures.
func (c *Composer) WeekSummary(days []*forecast.DailyWeather) []Dialog {
	if len(days) == 0 {
		return nil
	}

	categories := make([]string, len(days))
	for i, d := range days {
		categories[i] = strings.ToLower(d.Condition.Category)
	}
	primary := mostFrequent(categories)

	var primaryDays []int
	var otherOrder []string
	otherDays := map[string][]int{}
	for i, category := range categories {
		if category == primary {
			primaryDays = append(primaryDays, i)
			continue
		}
		if _, seen := otherDays[category]; !seen {
			otherOrder = append(otherOrder, category)
		}
		otherDays[category] = append(otherDays[category], i)
	}

	var dialogs []Dialog
	if c.isToday(days[0].DateTime) {
		dialogs = append(dialogs, Dialog{Name: "this.week", Data: map[string]interface{}{}})
	} else {
		dialogs = append(dialogs, Dialog{Name: "from.day", Data: map[string]interface{}{"day": c.spokenDay(days[0])}})
	}

	primarySequences := sequences(primaryDays)
	switch {
	case float64(len(primaryDays)) >= float64(len(days))/2:
		dialogs = append(dialogs, Dialog{
			Name: "weekly.conditions.mostly.one",
			Data: map[string]interface{}{"condition": primary},
		})
	case len(primarySequences) > 0:
		dialogs = append(dialogs, Dialog{
			Name: "weekly.conditions.seq.start",
			Data: map[string]interface{}{"condition": primary},
		})
		for _, seq := range primarySequences {
			dialogs = append(dialogs, c.sequenceDialog(days, seq, primary))
		}
	default:
		dialogs = append(dialogs, Dialog{
			Name: "weekly.conditions.some.days",
			Data: map[string]interface{}{"condition": primary},
		})
	}

	for _, category := range otherOrder {
		indices := otherDays[category]
		seqs := sequences(indices)
		for _, seq := range seqs {
			dialogs = append(dialogs, c.sequenceDialog(days, seq, category))
		}
		if len(seqs) == 0 {
			for _, i := range indices {
				dialogs = append(dialogs, Dialog{
					Name: "weekly.condition.on.day",
					Data: map[string]interface{}{
						"condition": days[i].Condition.Description,
						"day":       c.spokenDay(days[i]),
					},
				})
			}
		}
	}

	return append(dialogs, temperatureRange(days))
}

func (c *Composer) sequenceDialog(days []*forecast.DailyWeather, seq []int, condition string) Dialog {
	return Dialog{
		Name: "weekly.conditions.seq.period",
		Data: map[string]interface{}{
			"condition": condition,
			"from":      c.spokenDay(days[seq[0]]),
			"to":        c.spokenDay(days[seq[len(seq)-1]]),
		},
	}
}

func (c *Composer) spokenDay(day *forecast.DailyWeather) string {
	if c.isToday(day.DateTime) {
		return "Today"
	}
	return dayName(day.DateTime)
}

func temperatureRange(days []*forecast.DailyWeather) Dialog {
	lowMin, lowMax := days[0].Temperature.Low, days[0].Temperature.Low
	highMin, highMax := days[0].Temperature.High, days[0].Temperature.High
	for _, d := range days[1:] {
		lowMin = min(lowMin, d.Temperature.Low)
		lowMax = max(lowMax, d.Temperature.Low)
		highMin = min(highMin, d.Temperature.High)
		highMax = max(highMax, d.Temperature.High)
	}
	return Dialog{
		Name: "weekly.temp.range",
		Data: map[string]interface{}{
			"low_min":  lowMin,
			"low_max":  lowMax,
			"high_min": highMin,
			"high_max": highMax,
		},
	}
}

// mostFrequent returns the most common value, the earliest one on a tie
func mostFrequent(values []string) string {
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	for _, v := range values {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}

// sequences returns the runs of consecutive numbers in an ascending list.
// Single numbers are not runs.
func sequences(nums []int) [][]int {
	var runs [][]int
	var current []int
	for i, n := range nums {
		if i+1 < len(nums) && nums[i+1] == n+1 {
			current = append(current, n)
			continue
		}
		if len(current) > 0 {
			runs = append(runs, append(current, n))
			current = nil
		}
	}
	return runs
}
