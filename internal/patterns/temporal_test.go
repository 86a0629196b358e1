package patterns

import (
	"testing"

	"github.com/rawblock/washtrade-engine/pkg/models"
)

func TestTemporalSequences_Burst(t *testing.T) {
	// Four transfers inside 30 seconds: the window crosses the burst
	// minimum once the fourth lands.
	g := buildGraph([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 10),
		tx("3", "C", "D", 20),
		tx("4", "D", "A", 30),
	})

	bursts := TemporalSequences(g, DefaultBurstWindowSeconds)
	if len(bursts) != 1 {
		t.Fatalf("expected 1 burst, got %d", len(bursts))
	}
	if len(bursts[0].Records) != 4 {
		t.Errorf("expected 4 records in the burst, got %d", len(bursts[0].Records))
	}
	if bursts[0].ID == "" {
		t.Error("expected a sequence ID on the burst")
	}
}

func TestTemporalSequences_OverlappingBurstsEmitted(t *testing.T) {
	// A fifth transfer still inside the window emits a second,
	// overlapping burst; deduplication is deliberately absent.
	g := buildGraph([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 10),
		tx("3", "C", "D", 20),
		tx("4", "D", "A", 30),
		tx("5", "A", "C", 40),
	})

	bursts := TemporalSequences(g, DefaultBurstWindowSeconds)
	if len(bursts) != 2 {
		t.Fatalf("expected 2 overlapping bursts, got %d", len(bursts))
	}
	if len(bursts[1].Records) != 5 {
		t.Errorf("expected 5 records in the second burst, got %d", len(bursts[1].Records))
	}
}

func TestTemporalSequences_WindowEviction(t *testing.T) {
	// Three quick transfers, a long gap, then one more: the gap evicts
	// the window before it ever exceeds the burst minimum.
	g := buildGraph([]models.TransferRecord{
		tx("1", "A", "B", 0),
		tx("2", "B", "C", 10),
		tx("3", "C", "D", 20),
		tx("4", "D", "A", 500),
	})

	if bursts := TemporalSequences(g, DefaultBurstWindowSeconds); len(bursts) != 0 {
		t.Errorf("expected no bursts, got %d", len(bursts))
	}
}
