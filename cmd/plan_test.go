package main

import (
	"testing"
	"time"

	"github.com/AlenaYashkina/photo-reports/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func planFixture() (utils.TSession, []utils.TStampRecord) {
	photos := []utils.TPhoto{
		{Path: "/photos/1_a.jpg", Name: "1_a.jpg", Prefix: "1"},
		{Path: "/photos/1_b.jpg", Name: "1_b.jpg", Prefix: "1"},
		{Path: "/photos/2_c.jpg", Name: "2_c.jpg", Prefix: "2"},
	}
	session := utils.TSession{
		Name: "1 АЗС 15.03.2025",
		Date: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Phases: []utils.TPhase{
			{Name: "до начала работ", Groups: []utils.TPhotoGroup{{Key: "1", Photos: photos[:2]}}},
			{Name: "в ходе работ", Groups: []utils.TPhotoGroup{{Key: "2", Photos: photos[2:]}}},
		},
	}
	base := session.Date.Add(9 * time.Hour)
	records := []utils.TStampRecord{
		{Photo: photos[0], Timestamp: base, Location: "АЗС № 4\nул. Ленина, 12"},
		{Photo: photos[1], Timestamp: base.Add(50 * time.Second), Location: "АЗС № 4\nул. Ленина, 12"},
		{Photo: photos[2], Timestamp: base.Add(100 * time.Second), Location: "Депо"},
	}
	return session, records
}

/************************************************************************************************
** Tests for the plan table rendering. The assertions stick to cell contents because the table
** style owns the borders and header casing.
************************************************************************************************/

func TestPlanTableListsEveryRecord(t *testing.T) {
	session, records := planFixture()

	out := planTable(session, records)

	assert.Contains(t, out, "1 АЗС 15.03.2025 (15.03.2025)")
	assert.Contains(t, out, "1_a.jpg")
	assert.Contains(t, out, "1_b.jpg")
	assert.Contains(t, out, "2_c.jpg")
	assert.Contains(t, out, "2025-03-15 09:00:00")
	assert.Contains(t, out, "2025-03-15 09:01:40")
}

func TestPlanTableShowsPhaseAndGap(t *testing.T) {
	session, records := planFixture()

	out := planTable(session, records)

	assert.Contains(t, out, "до начала работ")
	assert.Contains(t, out, "в ходе работ")
	assert.Contains(t, out, "00:00:50", "gap to the previous photo")
	assert.Contains(t, out, "00:01:40", "session span in the footer")
}

func TestPlanTableFlattensMultiLineLocations(t *testing.T) {
	session, records := planFixture()

	out := planTable(session, records)

	assert.Contains(t, out, "АЗС № 4 ул. Ленина, 12")
	assert.NotContains(t, out, "АЗС № 4\nул. Ленина, 12")
}

func TestPlanTableSinglePhotoHasNoSpan(t *testing.T) {
	session, records := planFixture()

	out := planTable(session, records[:1])

	assert.Contains(t, out, "1_a.jpg")
	assert.NotContains(t, out, "00:00:50")
}
