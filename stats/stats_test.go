package stats

import (
	"testing"
	"time"

	"athletics-backend/models"

	"github.com/google/uuid"
)

func ptr(v float64) *float64 { return &v }

func jump(date models.Date, a, b, c float64) models.Jump {
	return models.Jump{ID: uuid.New(), Date: date, Jump1: a, Jump2: b, Jump3: c}
}

func TestJumpMetrics(t *testing.T) {
	j := jump(models.NewDate(2024, 1, 1), 50, 55, 52)

	if got := JumpAverage(&j); got != 52.33 {
		t.Errorf("JumpAverage() = %v, want 52.33", got)
	}
	if got := JumpMax(&j); got != 55 {
		t.Errorf("JumpMax() = %v, want 55", got)
	}
	if got := JumpMin(&j); got != 50 {
		t.Errorf("JumpMin() = %v, want 50", got)
	}

	c := JumpConsistency(&j)
	if c <= 0 || c >= 100 {
		t.Errorf("JumpConsistency() = %v, want within (0, 100)", c)
	}
}

func TestJumpAverageBetweenMinAndMax(t *testing.T) {
	cases := [][3]float64{
		{50, 55, 52},
		{0.1, 200, 100},
		{33.33, 33.34, 33.35},
		{199.99, 1, 77.7},
	}
	for _, c := range cases {
		j := jump(models.NewDate(2024, 1, 1), c[0], c[1], c[2])
		avg := JumpAverage(&j)
		if avg < JumpMin(&j)-0.005 || avg > JumpMax(&j)+0.005 {
			t.Errorf("%v: average %v outside [%v, %v]", c, avg, JumpMin(&j), JumpMax(&j))
		}
	}
}

func TestJumpConsistency(t *testing.T) {
	tests := []struct {
		name    string
		jumps   [3]float64
		want    float64
		inRange bool
	}{
		{name: "equal attempts", jumps: [3]float64{48.5, 48.5, 48.5}, want: 100},
		{name: "equal awkward attempts", jumps: [3]float64{33.33, 33.33, 33.33}, want: 100},
		{name: "zero mean", jumps: [3]float64{0, 0, 0}, want: 0},
		{name: "huge spread clamps to zero", jumps: [3]float64{0.01, 0.01, 200}, want: 0},
		{name: "typical", jumps: [3]float64{40, 45, 50}, inRange: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := jump(models.NewDate(2024, 1, 1), tt.jumps[0], tt.jumps[1], tt.jumps[2])
			got := JumpConsistency(&j)
			if tt.inRange {
				if got < 0 || got > 100 {
					t.Errorf("JumpConsistency() = %v, want within [0, 100]", got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("JumpConsistency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSummarizeJumps(t *testing.T) {
	empty := SummarizeJumps(nil)
	if empty.Count != 0 || empty.Best != nil || empty.Mean != nil || empty.LastDate != nil {
		t.Errorf("SummarizeJumps(nil) = %+v", empty)
	}

	jumps := []models.Jump{
		jump(models.NewDate(2024, 1, 1), 50, 55, 52),
		jump(models.NewDate(2024, 2, 1), 41, 42, 42),
	}
	s := SummarizeJumps(jumps)
	if s.Count != 2 {
		t.Errorf("Count = %d", s.Count)
	}
	if *s.Best != 55 {
		t.Errorf("Best = %v, want 55", *s.Best)
	}
	// (52.33 + 41.67) / 2
	if *s.Mean != 47 {
		t.Errorf("Mean = %v, want 47", *s.Mean)
	}
	if s.LastDate.String() != "2024-02-01" {
		t.Errorf("LastDate = %v", s.LastDate)
	}
}

func TestBestJump(t *testing.T) {
	if BestJump(nil) != nil {
		t.Fatal("BestJump(nil) should be nil")
	}

	jumps := []models.Jump{
		jump(models.NewDate(2024, 3, 1), 50, 60, 52),
		jump(models.NewDate(2024, 1, 1), 60, 40, 40),
		jump(models.NewDate(2024, 2, 1), 45, 45, 45),
	}
	best := BestJump(jumps)
	if best.ID != jumps[1].ID {
		t.Errorf("BestJump() picked %v, want the earliest 60cm record", best.Date)
	}
}

func TestWindStatus(t *testing.T) {
	tests := []struct {
		wind  *float64
		legal bool
	}{
		{nil, true},
		{ptr(-5), true},
		{ptr(0), true},
		{ptr(2.0), true},
		{ptr(2.01), false},
		{ptr(5), false},
	}

	for _, tt := range tests {
		if got := WindLegal(tt.wind); got != tt.legal {
			t.Errorf("WindLegal(%v) = %v, want %v", tt.wind, got, tt.legal)
		}
		want := WindInvalid
		if tt.legal {
			want = WindValid
		}
		if got := WindStatus(tt.wind); got != want {
			t.Errorf("WindStatus(%v) = %q, want %q", tt.wind, got, want)
		}
	}
}

func TestPacePer100m(t *testing.T) {
	tests := []struct {
		event  string
		result float64
		want   float64
	}{
		{"100m", 10.5, 10.5},
		{"200m", 21.3, 10.65},
		{"400m rasos", 48.2, 12.05},
		{"60", 7.1, 11.83},
		{"salto em distancia", 6.2, 6.2},
		{"0m", 3, 3},
		{"", 12, 12},
	}

	for _, tt := range tests {
		if got := PacePer100m(tt.event, tt.result); got != tt.want {
			t.Errorf("PacePer100m(%q, %v) = %v, want %v", tt.event, tt.result, got, tt.want)
		}
	}
}

func TestPersonalRecords(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	marks := []models.Mark{
		{ID: uuid.New(), Event: "200m", Result: 22.1, Date: models.NewDate(2024, 3, 1), CreatedAt: base},
		{ID: uuid.New(), Event: "100m", Result: 10.9, Date: models.NewDate(2024, 2, 1), CreatedAt: base},
		{ID: uuid.New(), Event: "100m", Result: 10.7, Date: models.NewDate(2024, 4, 1), CreatedAt: base},
		{ID: uuid.New(), Event: "100m", Result: 10.7, Date: models.NewDate(2024, 1, 1), CreatedAt: base},
	}

	records := PersonalRecords(marks)
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Event != "100m" || records[1].Event != "200m" {
		t.Errorf("records not sorted by event: %v, %v", records[0].Event, records[1].Event)
	}
	if records[0].ID != marks[3].ID {
		t.Errorf("100m record should be the earliest 10.7")
	}

	if !IsPersonalBest(&marks[3], marks) {
		t.Error("earliest 10.7 should be the personal best")
	}
	if IsPersonalBest(&marks[2], marks) {
		t.Error("later tie should not be the personal best")
	}
	if !IsPersonalBest(&marks[0], marks) {
		t.Error("only 200m mark should be the personal best")
	}
}

func TestMarkViews(t *testing.T) {
	marks := []models.Mark{
		{ID: uuid.New(), Event: "100m", Result: 10.9, Wind: ptr(2.5), Date: models.NewDate(2024, 2, 1)},
		{ID: uuid.New(), Event: "100m", Result: 11.2, Date: models.NewDate(2024, 1, 1)},
	}

	views := MarkViews(marks[1:], marks)
	if len(views) != 1 {
		t.Fatalf("len(views) = %d", len(views))
	}
	if views[0].IsPersonalBest {
		t.Error("11.2 is not the 100m record")
	}
	if views[0].WindStatus != WindValid || !views[0].IsValidWind {
		t.Errorf("unset wind should be valid, got %q", views[0].WindStatus)
	}

	v := MarkViewOf(&marks[0], marks)
	if !v.IsPersonalBest || v.IsValidWind || v.WindStatus != WindInvalid {
		t.Errorf("MarkViewOf() = %+v", v)
	}
	if v.PacePer100m != 10.9 {
		t.Errorf("PacePer100m = %v", v.PacePer100m)
	}
}

func TestSummarizeMarks(t *testing.T) {
	empty := SummarizeMarks(nil)
	if empty.Total != 0 || len(empty.Events) != 0 || empty.LastCompetition != nil {
		t.Errorf("SummarizeMarks(nil) = %+v", empty)
	}

	marks := []models.Mark{
		{ID: uuid.New(), Event: "200m", Result: 22.1, Type: models.MarkTest, Date: models.NewDate(2024, 6, 1)},
		{ID: uuid.New(), Event: "100m", Result: 10.9, Type: models.MarkCompetition, Date: models.NewDate(2024, 2, 1)},
		{ID: uuid.New(), Event: "100m", Result: 10.8, Type: models.MarkCompetition, Date: models.NewDate(2024, 4, 1)},
	}
	s := SummarizeMarks(marks)

	if s.Total != 3 {
		t.Errorf("Total = %d", s.Total)
	}
	if len(s.Events) != 2 || s.Events[0] != "100m" || s.Events[1] != "200m" {
		t.Errorf("Events = %v", s.Events)
	}
	if s.Best["100m"].Result != 10.8 {
		t.Errorf("Best[100m] = %v", s.Best["100m"].Result)
	}
	if s.LastCompetition == nil || s.LastCompetition.ID != marks[2].ID {
		t.Errorf("LastCompetition = %+v", s.LastCompetition)
	}
}

func TestAge(t *testing.T) {
	birth := models.NewDate(2000, 6, 15)

	if got := Age(&birth, time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)); *got != 23 {
		t.Errorf("Age() day before birthday = %d", *got)
	}
	if got := Age(&birth, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)); *got != 24 {
		t.Errorf("Age() on birthday = %d", *got)
	}
	if Age(nil, time.Now()) != nil {
		t.Error("Age(nil) should be nil")
	}
}
