package printclient

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"print3d-service/internal/dto"
	"print3d-service/pkg/constants"
)

func sampleOrders() []dto.OrderDTO {
	return []dto.OrderDTO{
		{ID: 1, Status: constants.StatusNew, Email: "Ivan@Shop.ru"},
		{ID: 2, Status: constants.StatusProcessing, Email: "olga@factory.ru"},
		{ID: 3, Status: constants.StatusNew, Email: "petr@shop.ru"},
		{ID: 4, Status: constants.StatusCancelled, Email: "anna@home.ru"},
	}
}

func ids(orders []dto.OrderDTO) []uint64 {
	out := make([]uint64, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestFilterOrders_AllReturnsEverythingInOrder(t *testing.T) {
	all := sampleOrders()

	assert.Equal(t, all, FilterOrders(all, "all", ""))
	assert.Equal(t, all, FilterOrders(all, "", ""))
}

func TestFilterOrders_StatusAndEmail(t *testing.T) {
	all := sampleOrders()

	assert.Equal(t, []uint64{1, 3}, ids(FilterOrders(all, constants.StatusNew, "")))
	assert.Equal(t, []uint64{1, 3}, ids(FilterOrders(all, "all", "SHOP.RU")))
	assert.Equal(t, []uint64{3}, ids(FilterOrders(all, constants.StatusNew, "petr")))
	assert.Empty(t, FilterOrders(all, constants.StatusCompleted, ""))
	assert.Empty(t, FilterOrders(all, constants.StatusCancelled, "shop"))
}

func TestFilterOrders_StatusIsComparedWhole(t *testing.T) {
	all := sampleOrders()

	assert.Empty(t, FilterOrders(all, "new,processing", ""))
	assert.Empty(t, FilterOrders(all, " , ", ""))
	assert.Empty(t, FilterOrders(all, "NEW", ""))
}

func TestFilterOrders_ExcludesEveryNonMatching(t *testing.T) {
	all := sampleOrders()
	got := FilterOrders(all, constants.StatusNew, "shop")

	for _, o := range all {
		matches := o.Status == constants.StatusNew && (o.ID == 1 || o.ID == 3)
		assert.Equal(t, matches, slices.ContainsFunc(got, func(g dto.OrderDTO) bool { return g.ID == o.ID }), "order %d", o.ID)
	}
}

func TestFilterOrders_IdempotentAndPure(t *testing.T) {
	all := sampleOrders()
	before := slices.Clone(all)

	once := FilterOrders(all, constants.StatusNew, "shop")
	twice := FilterOrders(once, constants.StatusNew, "shop")

	assert.Equal(t, once, twice)
	assert.Equal(t, before, all)
}
