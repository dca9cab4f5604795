package invoices

import (
	"math"
	"strings"
)

// Classification is the derived physical/service tag of an invoice item. It
// is recomputed on demand and never stored.
type Classification string

const (
	ClassPhysical Classification = "physical"
	ClassService  Classification = "service"
	ClassUnknown  Classification = "unknown"
)

// Keyword table v1. Matching is substring containment, not word-boundary,
// so "boxing" matches "box"; that false-positive rate is accepted.
var (
	serviceKeywords = []string{
		"service", "consultation", "consulting", "support", "maintenance",
		"training", "education", "development", "design", "analysis",
		"audit", "review", "assessment", "installation", "setup",
		"configuration", "implementation", "management", "administration",
		"monitoring", "hosting", "subscription", "license", "software",
		"digital", "online", "virtual", "remote", "cloud",
		"serviço", "consultoria", "suporte", "manutenção", "treinamento",
		"desenvolvimento", "análise", "auditoria", "instalação",
		"configuração", "administração", "monitoramento", "licença",
	}

	productKeywords = []string{
		"box", "piece", "unit", "item", "product", "goods", "material",
		"equipment", "device", "machine", "tool", "component", "part",
		"hardware", "accessory", "cable", "adapter", "battery",
		"caixa", "peça", "unidade", "produto", "mercadoria", "material",
		"equipamento", "dispositivo", "máquina", "ferramenta", "componente",
		"parte", "acessório", "cabo", "adaptador", "bateria",
	}

	// Checked before the generic keyword scoring: anything digital or
	// virtual is a service regardless of product keywords.
	digitalTerms = []string{"digital", "virtual", "online", "software", "license", "subscription"}
)

// ClassifyItem tags an item as physical, service or unknown. An explicit
// IsPhysicalProduct flag wins unconditionally; otherwise keyword and price
// heuristics decide. Pure function, never errors.
func ClassifyItem(item InvoiceItem) Classification {
	if item.IsPhysicalProduct != nil {
		if *item.IsPhysicalProduct {
			return ClassPhysical
		}
		return ClassService
	}

	searchText := strings.ToLower(item.Name + " " + item.Description)

	if containsAny(searchText, digitalTerms) {
		return ClassService
	}

	hasServiceKeywords := containsAny(searchText, serviceKeywords)
	hasProductKeywords := containsAny(searchText, productKeywords)

	if hasServiceKeywords && !hasProductKeywords {
		return ClassService
	}
	if hasProductKeywords && !hasServiceKeywords {
		return ClassPhysical
	}

	// Very low unit prices suggest digital goods; fractional quantities
	// suggest billed hours.
	if item.UnitPrice < 1 {
		return ClassService
	}
	if item.Quantity != math.Trunc(item.Quantity) {
		return ClassService
	}

	return ClassUnknown
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// ClassifiedItem pairs an invoice item with its position and derived tag.
type ClassifiedItem struct {
	Index          int            `json:"index"`
	Item           InvoiceItem    `json:"item"`
	Classification Classification `json:"classification"`
}

// ClassifyItems tags every item of an invoice in order.
func ClassifyItems(inv Invoice) []ClassifiedItem {
	out := make([]ClassifiedItem, 0, len(inv.Details.Items))
	for i, item := range inv.Details.Items {
		out = append(out, ClassifiedItem{Index: i, Item: item, Classification: ClassifyItem(item)})
	}
	return out
}

// PhysicalItems returns the items classified as physical, with their
// original indices.
func PhysicalItems(inv Invoice) []ClassifiedItem {
	return filterByClass(inv, ClassPhysical)
}

// ServiceItems returns the items classified as services.
func ServiceItems(inv Invoice) []ClassifiedItem {
	return filterByClass(inv, ClassService)
}

// UnknownItems returns the items the heuristics could not decide.
func UnknownItems(inv Invoice) []ClassifiedItem {
	return filterByClass(inv, ClassUnknown)
}

func filterByClass(inv Invoice, class Classification) []ClassifiedItem {
	out := make([]ClassifiedItem, 0)
	for _, ci := range ClassifyItems(inv) {
		if ci.Classification == class {
			out = append(out, ci)
		}
	}
	return out
}

// ClassGroup is one bucket of a classification summary.
type ClassGroup struct {
	Count int              `json:"count"`
	Items []ClassifiedItem `json:"items"`
}

// ClassificationSummary aggregates the per-item tags of an invoice.
type ClassificationSummary struct {
	Physical         ClassGroup `json:"physical"`
	Services         ClassGroup `json:"services"`
	Unknown          ClassGroup `json:"unknown"`
	Total            int        `json:"total"`
	HasPhysicalItems bool       `json:"hasPhysicalItems"`
	HasOnlyServices  bool       `json:"hasOnlyServices"`
	IsMixed          bool       `json:"isMixed"`
}

// SummarizeClassification buckets all items and derives the shipping flags.
func SummarizeClassification(inv Invoice) ClassificationSummary {
	physical := PhysicalItems(inv)
	services := ServiceItems(inv)
	unknown := UnknownItems(inv)
	total := len(inv.Details.Items)

	return ClassificationSummary{
		Physical:         ClassGroup{Count: len(physical), Items: physical},
		Services:         ClassGroup{Count: len(services), Items: services},
		Unknown:          ClassGroup{Count: len(unknown), Items: unknown},
		Total:            total,
		HasPhysicalItems: len(physical) > 0,
		HasOnlyServices:  len(services) == total,
		IsMixed:          len(physical) > 0 && len(services) > 0,
	}
}

// PackageSuggestion is a coarse packing estimate for the physical items.
type PackageSuggestion struct {
	SuggestedPackages int      `json:"suggestedPackages"`
	EstimatedWeight   float64  `json:"estimatedWeight"`
	ItemCategories    []string `json:"itemCategories"`
}

// Per-unit weight estimates by coarse category, in kg.
var categoryWeights = []struct {
	name   string
	terms  []string
	unitKg float64
}{
	{"electronics", []string{"electronic", "computer", "phone", "tablet"}, 0.5},
	{"books", []string{"book", "document", "paper"}, 0.3},
	{"textiles", []string{"clothing", "textile", "fabric"}, 0.2},
	{"machinery", []string{"machinery", "equipment", "tool"}, 5},
}

// SuggestPackageConfiguration estimates total weight and package count for
// a set of physical items, capping packages at roughly 20 kg each.
func SuggestPackageConfiguration(physicalItems []ClassifiedItem) PackageSuggestion {
	if len(physicalItems) == 0 {
		return PackageSuggestion{ItemCategories: []string{}}
	}

	var estimatedWeight float64
	categories := make([]string, 0, 4)
	seen := make(map[string]bool)

	for _, ci := range physicalItems {
		searchText := strings.ToLower(ci.Item.Name + " " + ci.Item.Description)

		category := "general"
		unitKg := 1.0
		for _, cw := range categoryWeights {
			if containsAny(searchText, cw.terms) {
				category = cw.name
				unitKg = cw.unitKg
				break
			}
		}

		if !seen[category] {
			seen[category] = true
			categories = append(categories, category)
		}
		estimatedWeight += ci.Item.Quantity * unitKg
	}

	suggestedPackages := int(math.Ceil(estimatedWeight / 20))
	if suggestedPackages < 1 {
		suggestedPackages = 1
	}

	return PackageSuggestion{
		SuggestedPackages: suggestedPackages,
		EstimatedWeight:   math.Round(estimatedWeight*100) / 100,
		ItemCategories:    categories,
	}
}
