package patterns

import (
	"github.com/rawblock/washtrade-engine/internal/graph"
	"github.com/rawblock/washtrade-engine/pkg/models"
)

func buildGraph(records []models.TransferRecord) *graph.Graph {
	return graph.NewStore(records).Graph()
}

func tx(id, from, to string, ts int64) models.TransferRecord {
	return models.TransferRecord{ID: id, FromWallet: from, ToWallet: to, Amount: 1, Timestamp: ts, Price: 100.5}
}

func txPrice(id, from, to string, ts int64, price float64) models.TransferRecord {
	r := tx(id, from, to, ts)
	r.Price = price
	return r
}
