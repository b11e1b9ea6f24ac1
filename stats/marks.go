package stats

import (
	"sort"
	"strconv"
	"time"

	"athletics-backend/models"
)

// MaxLegalWind is the tailwind limit in m/s above which a mark does not
// count for records.
const MaxLegalWind = 2.0

const (
	WindValid   = "valido"
	WindInvalid = "invalido"
)

// WindLegal reports whether the wind reading allows the mark to count.
// An unset reading is legal.
func WindLegal(wind *float64) bool {
	return wind == nil || *wind <= MaxLegalWind
}

func WindStatus(wind *float64) string {
	if WindLegal(wind) {
		return WindValid
	}
	return WindInvalid
}

// ParseDistance reads the leading digits of an event name ("100m" -> 100,
// "4x100m" -> 4). Returns 0 when the name does not start with a digit.
func ParseDistance(event string) int {
	n := 0
	for n < len(event) && event[n] >= '0' && event[n] <= '9' {
		n++
	}
	if n == 0 {
		return 0
	}
	d, err := strconv.Atoi(event[:n])
	if err != nil {
		return 0
	}
	return d
}

// PacePer100m normalizes result to seconds per 100 metres. When the event
// carries no usable distance the raw result is returned.
func PacePer100m(event string, result float64) float64 {
	d := ParseDistance(event)
	if d <= 0 {
		return result
	}
	return round2(result / float64(d) * 100)
}

func markBefore(a, b *models.Mark) bool {
	if !a.Date.Equal(b.Date.Time) {
		return a.Date.Before(b.Date.Time)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

func betterMark(a, b *models.Mark) bool {
	if a.Result != b.Result {
		return a.Result < b.Result
	}
	return markBefore(a, b)
}

// PersonalRecords returns the best (lowest) mark for each event, sorted by
// event name.
func PersonalRecords(marks []models.Mark) []models.Mark {
	best := make(map[string]*models.Mark)
	for i := range marks {
		m := &marks[i]
		if cur, ok := best[m.Event]; !ok || betterMark(m, cur) {
			best[m.Event] = m
		}
	}

	records := make([]models.Mark, 0, len(best))
	for _, m := range best {
		records = append(records, *m)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Event < records[j].Event
	})
	return records
}

// IsPersonalBest reports whether mark is the record for its event among
// the athlete's marks.
func IsPersonalBest(mark *models.Mark, athleteMarks []models.Mark) bool {
	for _, r := range PersonalRecords(athleteMarks) {
		if r.Event == mark.Event {
			return r.ID == mark.ID
		}
	}
	return false
}

func MarkViewOf(m *models.Mark, athleteMarks []models.Mark) models.MarkView {
	return models.MarkView{
		Mark:           m,
		IsValidWind:    WindLegal(m.Wind),
		WindStatus:     WindStatus(m.Wind),
		PacePer100m:    PacePer100m(m.Event, m.Result),
		IsPersonalBest: IsPersonalBest(m, athleteMarks),
	}
}

// MarkViews builds views for marks, resolving personal bests against the
// full set of the athlete's marks.
func MarkViews(marks []models.Mark, athleteMarks []models.Mark) []models.MarkView {
	records := make(map[string]models.Mark)
	for _, r := range PersonalRecords(athleteMarks) {
		records[r.Event] = r
	}

	views := make([]models.MarkView, 0, len(marks))
	for i := range marks {
		m := &marks[i]
		r, ok := records[m.Event]
		views = append(views, models.MarkView{
			Mark:           m,
			IsValidWind:    WindLegal(m.Wind),
			WindStatus:     WindStatus(m.Wind),
			PacePer100m:    PacePer100m(m.Event, m.Result),
			IsPersonalBest: ok && r.ID == m.ID,
		})
	}
	return views
}

type BestMark struct {
	Result   float64     `json:"result"`
	Date     models.Date `json:"date"`
	Location *string     `json:"location"`
	Wind     *float64    `json:"wind"`
}

type MarkSummary struct {
	Total           int                 `json:"total_records"`
	Events          []string            `json:"events"`
	Best            map[string]BestMark `json:"best_marks"`
	LastCompetition *models.Mark        `json:"last_competition"`
}

func SummarizeMarks(marks []models.Mark) MarkSummary {
	summary := MarkSummary{
		Total:  len(marks),
		Events: []string{},
		Best:   map[string]BestMark{},
	}

	for _, r := range PersonalRecords(marks) {
		summary.Events = append(summary.Events, r.Event)
		summary.Best[r.Event] = BestMark{Result: r.Result, Date: r.Date, Location: r.Location, Wind: r.Wind}
	}

	for i := range marks {
		m := &marks[i]
		if m.Type != models.MarkCompetition {
			continue
		}
		if summary.LastCompetition == nil || markBefore(summary.LastCompetition, m) {
			summary.LastCompetition = m
		}
	}
	return summary
}

// Age in whole years on today's date. Nil when birth is unknown.
func Age(birth *models.Date, today time.Time) *int {
	if birth == nil || birth.IsZero() {
		return nil
	}
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return &age
}

func AthleteViewOf(p *models.AthleteProfile, today time.Time) models.AthleteView {
	return models.AthleteView{AthleteProfile: p, Age: Age(p.BirthDate, today)}
}
