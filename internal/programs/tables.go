package programs

import "admission-workers/internal/models"

// Built-in name -> CIP tables. Keys are already in canonical (normalized) form.

var defaultCodes = map[string]models.CIPCode{
	// data & AI
	"data science":            3070,
	"data analytics":          3071,
	"business analytics":      3071,
	"artificial intelligence": 1101,
	"machine learning":        1107,
	"computer science":        1107,
	"information systems":     1104,
	"information technology":  1101,
	"software engineering":    1402,
	// engineering
	"electrical engineering": 1410,
	"computer engineering":   1409,
	// business
	"information systems (business)": 5203,
}

// defaultBundles lists related codes in precision order. The resolved code may
// appear; Bundle filters it out.
var defaultBundles = map[string][]models.CIPCode{
	"data science":            {3070, 3071, 2705, 1107, 1104},
	"data analytics":          {3071, 3070, 5213, 2705},
	"business analytics":      {3071, 5213, 5212},
	"artificial intelligence": {1101, 1107, 3070},
	"machine learning":        {1107, 1101, 3070},
	"computer science":        {1107, 1101, 1104, 1409},
	"information systems":     {1104, 1101, 5212},
	"information technology":  {1101, 1104, 1110},
	"software engineering":    {1402, 1409, 1107},
	"electrical engineering":  {1410, 1409},
	"computer engineering":    {1409, 1410, 1107},
}

var defaultSynonyms = map[string][]string{
	"data science":            {"data science", "data analytics", "analytics", "statistics"},
	"data analytics":          {"data analytics", "analytics", "data science"},
	"business analytics":      {"business analytics", "analytics", "management information"},
	"artificial intelligence": {"artificial intelligence", "computer science", "computer and information sciences"},
	"machine learning":        {"machine learning", "artificial intelligence", "computer science"},
	"computer science":        {"computer science", "computer and information sciences", "computing"},
	"information systems":     {"information systems", "information science", "information technology"},
	"information technology":  {"information technology", "information systems", "computer"},
	"software engineering":    {"software", "computer engineering", "computer science"},
	"electrical engineering":  {"electrical", "electronics"},
	"computer engineering":    {"computer engineering", "electrical", "computer science"},
}
