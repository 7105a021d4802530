package intake

import (
	"context"
	"strings"

	"github.com/spec-kit/campus-helpdesk/internal/domain"
)

// Predictor is the trained statistical classifier the engine consumes as a
// black box. It may be absent (nil); a nil or failing predictor degrades to
// the maintenance department default.
type Predictor interface {
	Predict(text string) (domain.Category, error)
}

// IssueLookup resolves a query against the auxiliary issue→technician
// mapping table. Implementations return the technician name or
// LookupUnknown when nothing matches; absence of the table is tolerated.
type IssueLookup interface {
	Lookup(ctx context.Context, query string) (string, error)
}

// LookupUnknown is the sentinel the auxiliary lookup returns for a miss.
const LookupUnknown = "unknown"

// RoleFinder resolves a technician name to their trade.
type RoleFinder interface {
	RoleOf(ctx context.Context, name string) (domain.Trade, bool)
}

// tradeTriggers binds a trade to its trigger substrings. Order matters:
// the first trade whose any trigger is found in the query wins.
type tradeTriggers struct {
	trade    domain.Trade
	triggers []string
}

var keywordBoosts = []tradeTriggers{
	{domain.TradeElectrician, []string{"fan", "light", "switch", "socket", "ac", "air conditioner", "charger", "plug"}},
	{domain.TradePlumber, []string{"leak", "water", "tap", "flush", "pipe", "drain", "burst"}},
	{domain.TradeCarpenter, []string{"door", "bed", "cupboard", "window", "table", "hinge"}},
	{domain.TradePainter, []string{"paint", "wall", "colour", "color", "peel"}},
}

// autoRoleSweep is the last-resort trade table consulted when neither the
// keyword boost nor the auxiliary lookup produced a trade.
var autoRoleSweep = []tradeTriggers{
	{domain.TradeElectrician, []string{"fan", "light", "switch", "ac", "air conditioner", "tube", "socket"}},
	{domain.TradePlumber, []string{"leak", "tap", "flush", "water", "pipe", "drain", "washroom"}},
	{domain.TradeCarpenter, []string{"door", "bed", "table", "window", "cupboard", "wood"}},
}

// Classifier resolves a normalized query to a department category and an
// optional technician trade through ordered rule tiers.
type Classifier struct {
	predictor Predictor
	lookup    IssueLookup
	roles     RoleFinder
}

// NewClassifier builds a classifier. Any collaborator may be nil; the
// corresponding tier is then skipped.
func NewClassifier(predictor Predictor, lookup IssueLookup, roles RoleFinder) *Classifier {
	return &Classifier{predictor: predictor, lookup: lookup, roles: roles}
}

// Classify resolves (category, trade) for a normalized query. The first
// tier to succeed wins:
//
//  1. keyword boost: a trigger substring fixes the category to the
//     maintenance department and the trade to the matching table entry;
//  2. statistical predictor: category only; absence or failure defaults
//     to the maintenance department;
//  3. for maintenance-category queries without a trade, the auxiliary
//     issue→technician lookup, then the secondary auto-role sweep.
//
// A category is always returned; the trade may be nil, meaning no
// technician dispatch is attempted.
func (c *Classifier) Classify(ctx context.Context, query string) (domain.Category, *domain.Trade) {
	if trade, ok := matchTrade(keywordBoosts, query); ok {
		return domain.CategoryMaintenance, &trade
	}

	category := domain.CategoryMaintenance
	if c.predictor != nil {
		if predicted, err := c.predictor.Predict(query); err == nil && predicted != "" {
			category = predicted
		}
	}

	if category != domain.CategoryMaintenance {
		return category, nil
	}
	if trade, ok := c.lookupTrade(ctx, query); ok {
		return category, &trade
	}
	if trade, ok := matchTrade(autoRoleSweep, query); ok {
		return category, &trade
	}
	return category, nil
}

func (c *Classifier) lookupTrade(ctx context.Context, query string) (domain.Trade, bool) {
	if c.lookup == nil || c.roles == nil {
		return "", false
	}
	name, err := c.lookup.Lookup(ctx, query)
	if err != nil || name == "" || name == LookupUnknown {
		return "", false
	}
	return c.roles.RoleOf(ctx, name)
}

func matchTrade(table []tradeTriggers, query string) (domain.Trade, bool) {
	for _, entry := range table {
		for _, trigger := range entry.triggers {
			if strings.Contains(query, trigger) {
				return entry.trade, true
			}
		}
	}
	return "", false
}
