package query

// Keyword groups used to assemble the built-in topic queries. Each group
// is an OR-set of taxon, gene, or process terms; topics combine them with
// And and exclude off-target taxa with Not(Excluded). Quoting is carried
// per term: quoted terms are exact phrases, unquoted terms go through
// PubMed's automatic term mapping.
var (
	// Lepidoptera covers the order plus common genera and model species.
	Lepidoptera = Terms(
		"Lepidoptera", "moth*", "butterfly*", `"silkworm"`, "Bombyx",
		"Antheraea", "Samia", "Manduca", "Helicoverpa", "Spodoptera",
		"Cydia", "Ostrinia", "Galleria", "Hyphantria", "Grapholita",
		"Papilio", "Pieris", "Danaus", "Hyles", "Plutella", "Agrotis",
		"Mythimna",
	)

	// Vitellogenin covers yolk protein synthesis and uptake.
	Vitellogenin = Terms(
		`"vitellogenin"`, `"vitellogenesis"`, `"vitellin"`, `"VgR"`,
		`"vitellogenin receptor"`, `"yolk protein"`, `"yolk"`,
		`"egg yolk"`, `"fat body"`, `"oocyte development"`,
		`"oocyte maturation"`, `"vitellogenic stage"`,
		`"vitellogenic oocyte"`,
	)

	// Hormone is the broad endocrine-regulation group.
	Hormone = Terms(
		`"juvenile hormone"`, "JH", "methoprene", "Met", "Taiman",
		`"Kr-h1"`, "ecdysone", "20E", `"20-hydroxyecdysone"`,
		`"ecdysteroid"`, "EcR", "USP", `"Broad-Complex"`, "Br-C",
		`"hormone receptor"`, `"steroid hormones"`,
		`"endocrine regulation"`, `"steroid receptor"`, `"gonadotropic"`,
		`"gonadotrophic"`, "insulin", `"insulin-like peptide"`, "IIS",
		"TOR", `"JH esterase"`, `"JH epoxide hydrolase"`, "JHAMT",
		"neuroendocrine", `"steroidogenic pathway"`,
		`"hormone signaling"`,
	)

	// HormoneEcdysone restricts the hormone group to the 20E axis.
	HormoneEcdysone = Terms(
		"ecdysone", "20E", `"20-hydroxyecdysone"`, `"ecdysteroid"`,
		"EcR", "USP", `"Broad-Complex"`, "Br-C", `"steroid hormones"`,
		`"steroid receptor"`, `"steroidogenic pathway"`,
	)

	// HormoneJH restricts the hormone group to the juvenile hormone axis.
	HormoneJH = Terms(
		`"juvenile hormone"`, "JH", "methoprene", "Met", "Taiman",
		`"Kr-h1"`, `"JH esterase"`, `"JH epoxide hydrolase"`, "JHAMT",
	)

	// Ovary covers ovarian morphology and oogenesis.
	Ovary = Terms(
		"panoistic", "meroistic", "telotrophic", "polytrophic",
		"ovariole*", "oogenesis", "ovary", "ovarian",
		`"oocyte maturation"`, `"ovarian development"`,
		`"ovarian follicle"`, "germarium", `"nurse cell"`,
		`"follicular epithelium"`, `"chorion formation"`,
	)

	// Reproduction covers reproductive modes and output.
	Reproduction = Terms(
		"viviparity", "ovoviviparity", "oviparity", "parthenogenesis",
		"paedogenesis", `"reproductive strategy"`,
		`"reproductive physiology"`, `"reproductive diapause"`,
		`"reproductive output"`, `"mating behavior"`,
		`"female reproduction"`, `"male reproduction"`,
		`"egg production"`, `"egg laying"`, "oviposition", "fecundity",
		"fertility",
	)

	// LifeHistory covers developmental timing and lifespan.
	LifeHistory = Terms(
		`"life history"`, `"life-history"`, "lifehistory",
		`"life span"`, "longevity", `"developmental duration"`,
		`"development time"`, `"postembryonic development"`,
		"metamorphosis", `"pupal stage"`, `"larval stage"`,
		`"adult longevity"`, `"reproductive lifespan"`, "diapause",
		`"seasonal reproduction"`,
	)

	// Nutrition covers feeding and nutrient signaling.
	Nutrition = Terms(
		`"feeding behavior"`, `"adult feeding"`, `"feeding ecology"`,
		"diet", `"nutritional regulation"`, `"nutrient signaling"`,
		`"sugar feeding"`, `"nectar feeding"`, `"amino acid"`,
		`"lipid metabolism"`, `"carbohydrate metabolism"`,
		`"feeding adaptation"`, `"nutritional stress"`,
		`"nutrient limitation"`,
	)

	// Excluded filters out off-target taxa; always applied with Not.
	Excluded = Terms(
		"Drosophila", "Diptera", "bee", "Apis", "Hymenoptera", "beetle",
		"Coleoptera", "mosquito", "Aedes", "Anopheles", "locust",
		"Orthoptera", "Blattodea", "human", "mouse", "rat", "mammal",
		"plant", "fish", "bacteria", "virus", "yeast", "fungus",
		"turtle", "snake", "cannabis",
	)
)
