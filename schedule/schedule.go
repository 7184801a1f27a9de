// Package schedule attributes a play time to the DJ and show on air.
package schedule

import "time"

// ShowInfo identifies who was on air for a given slot.
type ShowInfo struct {
	DJ   string
	Show string
}

// band is one programming slot: weekdays it applies to and the
// half-open hour range [StartHour, EndHour).
type band struct {
	weekdays  []time.Weekday
	startHour int
	endHour   int
	info      ShowInfo
}

var weekdaysMonFri = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
}

// bands is evaluated top to bottom, first match wins. The station
// schedule does not overlap, but order is still the contract.
var bands = []band{
	{weekdaysMonFri, 6, 10, ShowInfo{"Alex Cortright", "Morning Show"}},
	{weekdaysMonFri, 10, 14, ShowInfo{"Megan Byrd", "Middays"}},
	{weekdaysMonFri, 14, 18, ShowInfo{"Rob Timm", "Afternoons"}},
	{weekdaysMonFri, 18, 20, ShowInfo{"Various", "Evening Shows"}},
	{weekdaysMonFri, 20, 22, ShowInfo{"Paul Hartman", "Detour"}},
	{[]time.Weekday{time.Saturday}, 8, 10, ShowInfo{"Brooks Long", "Six Degrees of Soul"}},
	{[]time.Weekday{time.Saturday}, 10, 14, ShowInfo{"Weekend Host", "Weekend Mix"}},
	{[]time.Weekday{time.Sunday}, 10, 12, ShowInfo{"Sunday Host", "Sunday Morning"}},
	{[]time.Weekday{time.Sunday}, 12, 14, ShowInfo{"Various", "Sunday Afternoon"}},
}

// automated is the fallback for any slot outside the published schedule.
var automated = ShowInfo{DJ: "Automated", Show: "Automated Programming"}

// Resolve maps a weekday and hour of day to the scheduled DJ and show.
// Slots not covered by a programming band resolve to automated rotation.
func Resolve(weekday time.Weekday, hour int) ShowInfo {
	for _, b := range bands {
		if hour < b.startHour || hour >= b.endHour {
			continue
		}
		for _, wd := range b.weekdays {
			if wd == weekday {
				return b.info
			}
		}
	}
	return automated
}
