package entities

// Site classification enums. Empty values are allowed and mean "not surveyed".

type SlopeClass string

const (
	SlopeFlat      SlopeClass = "FLAT"
	SlopeGentle    SlopeClass = "GENTLE"
	SlopeModerate  SlopeClass = "MODERATE"
	SlopeSteep     SlopeClass = "STEEP"
	SlopeVerySteep SlopeClass = "VERY_STEEP"
)

func (s SlopeClass) Valid() bool {
	switch s {
	case "", SlopeFlat, SlopeGentle, SlopeModerate, SlopeSteep, SlopeVerySteep:
		return true
	}
	return false
}

type SoilTexture string

const (
	SoilSand      SoilTexture = "SAND"
	SoilSandy     SoilTexture = "SANDY"
	SoilLoamySand SoilTexture = "LOAMY_SAND"
	SoilSandyLoam SoilTexture = "SANDY_LOAM"
	SoilLoam      SoilTexture = "LOAM"
	SoilSiltLoam  SoilTexture = "SILT_LOAM"
	SoilSilt      SoilTexture = "SILT"
	SoilClayLoam  SoilTexture = "CLAY_LOAM"
	SoilSandyClay SoilTexture = "SANDY_CLAY"
	SoilClay      SoilTexture = "CLAY"
)

func (s SoilTexture) Valid() bool {
	switch s {
	case "", SoilSand, SoilSandy, SoilLoamySand, SoilSandyLoam, SoilLoam,
		SoilSiltLoam, SoilSilt, SoilClayLoam, SoilSandyClay, SoilClay:
		return true
	}
	return false
}

type LandUse string

const (
	LandUseArable       LandUse = "ARABLE"
	LandUsePasture      LandUse = "PASTURE"
	LandUseForest       LandUse = "FOREST"
	LandUseRangeland    LandUse = "RANGELAND"
	LandUseAgroforestry LandUse = "AGROFORESTRY"
	LandUseSettlement   LandUse = "SETTLEMENT"
	LandUseMixed        LandUse = "MIXED"
)

func (l LandUse) Valid() bool {
	switch l {
	case "", LandUseArable, LandUsePasture, LandUseForest, LandUseRangeland,
		LandUseAgroforestry, LandUseSettlement, LandUseMixed:
		return true
	}
	return false
}

type Drainage string

const (
	DrainagePoor      Drainage = "POOR"
	DrainageImperfect Drainage = "IMPERFECT"
	DrainageModerate  Drainage = "MODERATE"
	DrainageWell      Drainage = "WELL"
	DrainageExcessive Drainage = "EXCESSIVE"
)

func (d Drainage) Valid() bool {
	switch d {
	case "", DrainagePoor, DrainageImperfect, DrainageModerate, DrainageWell, DrainageExcessive:
		return true
	}
	return false
}

type RainfallBand string

const (
	RainfallArid     RainfallBand = "ARID"
	RainfallSemiArid RainfallBand = "SEMI_ARID"
	RainfallSubHumid RainfallBand = "SUB_HUMID"
	RainfallHumid    RainfallBand = "HUMID"
)

func (r RainfallBand) Valid() bool {
	switch r {
	case "", RainfallArid, RainfallSemiArid, RainfallSubHumid, RainfallHumid:
		return true
	}
	return false
}

type GullyState string

const (
	GullyNone     GullyState = "NONE"
	GullyMinor    GullyState = "MINOR"
	GullyModerate GullyState = "MODERATE"
	GullySevere   GullyState = "SEVERE"
)

func (g GullyState) Valid() bool {
	switch g {
	case "", GullyNone, GullyMinor, GullyModerate, GullySevere:
		return true
	}
	return false
}

// Workflow statuses.

type SiteTechniqueStatus string

const (
	SiteTechniquePlanned    SiteTechniqueStatus = "PLANNED"
	SiteTechniqueInProgress SiteTechniqueStatus = "IN_PROGRESS"
	SiteTechniqueActive     SiteTechniqueStatus = "ACTIVE"
	SiteTechniqueCompleted  SiteTechniqueStatus = "COMPLETED"
	SiteTechniqueSuspended  SiteTechniqueStatus = "SUSPENDED"
)

func (s SiteTechniqueStatus) Valid() bool {
	switch s {
	case SiteTechniquePlanned, SiteTechniqueInProgress, SiteTechniqueActive,
		SiteTechniqueCompleted, SiteTechniqueSuspended:
		return true
	}
	return false
}

type DesignStatus string

const (
	DesignDraft    DesignStatus = "DRAFT"
	DesignInReview DesignStatus = "IN_REVIEW"
	DesignApproved DesignStatus = "APPROVED"
	DesignArchived DesignStatus = "ARCHIVED"
)

func (s DesignStatus) Valid() bool {
	switch s {
	case DesignDraft, DesignInReview, DesignApproved, DesignArchived:
		return true
	}
	return false
}

type CostCategory string

const (
	CostLabor     CostCategory = "labor"
	CostMaterials CostCategory = "materials"
	CostEquipment CostCategory = "equipment"
	CostTransport CostCategory = "transport"
	CostOther     CostCategory = "other"
)

func (c CostCategory) Valid() bool {
	switch c {
	case CostLabor, CostMaterials, CostEquipment, CostTransport, CostOther:
		return true
	}
	return false
}

// CostCategories lists every category in report order.
var CostCategories = []CostCategory{CostLabor, CostMaterials, CostEquipment, CostTransport, CostOther}
