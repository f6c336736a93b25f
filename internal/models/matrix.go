package models

// ApprovalType identifies a family of transactions that share an approval matrix
type ApprovalType string

// ApprovalType constants
const (
	ApprovalTypeRAB                ApprovalType = "rab"
	ApprovalTypePurchaseOrders     ApprovalType = "purchaseOrders"
	ApprovalTypeWorkOrders         ApprovalType = "workOrders"
	ApprovalTypeChangeOrders       ApprovalType = "changeOrders"
	ApprovalTypeMaterialRequests   ApprovalType = "materialRequests"
	ApprovalTypeProgressPayments   ApprovalType = "progressPayments"
	ApprovalTypeContractVariations ApprovalType = "contractVariations"
)

// AllApprovalTypes lists every approval type in declaration order
var AllApprovalTypes = []ApprovalType{
	ApprovalTypeRAB,
	ApprovalTypePurchaseOrders,
	ApprovalTypeWorkOrders,
	ApprovalTypeChangeOrders,
	ApprovalTypeMaterialRequests,
	ApprovalTypeProgressPayments,
	ApprovalTypeContractVariations,
}

// IsValid reports whether t is one of the known approval types
func (t ApprovalType) IsValid() bool {
	for _, known := range AllApprovalTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Role is the name of an organizational role that can take part in an approval
type Role string

// Role constants
const (
	RoleSiteEngineer         Role = "Site Engineer"
	RoleProjectManager       Role = "Project Manager"
	RoleProcurementManager   Role = "Procurement Manager"
	RoleQAQCManager          Role = "QA/QC Manager"
	RoleSafetyManager        Role = "Safety Manager"
	RoleEnvironmentalOfficer Role = "Environmental Officer"
	RoleQuantitySurveyor     Role = "Quantity Surveyor"
	RoleImportExportManager  Role = "Import/Export Manager"
	RoleAreaManager          Role = "Area Manager"
	RolePlanningManager      Role = "Planning Manager"
	RoleTechnicalManager     Role = "Technical Manager"
	RoleLegalOfficer         Role = "Legal Officer"
	RoleRegulatoryAffairs    Role = "Regulatory Affairs"
	RoleDesignConsultant     Role = "Design Consultant"
	RoleOperationsDirector   Role = "Operations Director"
	RoleFinanceDirector      Role = "Finance Director"
	RoleClientRepresentative Role = "Client Representative"
)

// Condition names a special circumstance that modifies an approval requirement
type Condition string

// Condition constants
const (
	ConditionHazardousWork    Condition = "hazardousWork"
	ConditionClientApproval   Condition = "clientApproval"
	ConditionImportedMaterial Condition = "importedMaterial"
	ConditionLongTermContract Condition = "longTermContract"
	ConditionCriticalPath     Condition = "criticalPath"
	ConditionQualityCritical  Condition = "qualityCritical"
	ConditionScheduleImpact   Condition = "scheduleImpact"
	ConditionRegulatory       Condition = "regulatory"
	ConditionUrgent           Condition = "urgent"
	ConditionQualityControl   Condition = "qualityControl"
	ConditionWarranty         Condition = "warranty"
	ConditionTimeExtension    Condition = "timeExtension"
	ConditionScopeChange      Condition = "scopeChange"
)

// Threshold is a single amount band within an approval type
type Threshold struct {
	Max            *float64 `json:"max" yaml:"max,omitempty"` // nil means unbounded
	Roles          []Role   `json:"roles" yaml:"roles"`
	Description    string   `json:"description" yaml:"description"`
	TimeLimitHours int      `json:"timeLimitHours" yaml:"timeLimitHours"`
	AutoEscalate   bool     `json:"autoEscalate" yaml:"autoEscalate"`
}

// Covers reports whether amount falls at or below this threshold's ceiling
func (t Threshold) Covers(amount float64) bool {
	return t.Max == nil || amount <= *t.Max
}

// IsUnbounded returns true for the open-ended last band
func (t Threshold) IsUnbounded() bool {
	return t.Max == nil
}

// Clone returns a deep copy of the threshold
func (t Threshold) Clone() Threshold {
	out := t
	if t.Max != nil {
		ceiling := *t.Max
		out.Max = &ceiling
	}
	out.Roles = append([]Role(nil), t.Roles...)
	return out
}

// SpecialCondition augments the base threshold of an approval type
type SpecialCondition struct {
	AdditionalRoles []Role `json:"additionalRoles,omitempty" yaml:"additionalRoles,omitempty"`
	TimeLimitHours  int    `json:"timeLimitHours,omitempty" yaml:"timeLimitHours,omitempty"` // 0 means not set
	Description     string `json:"description" yaml:"description"`
}

// Clone returns a deep copy of the condition
func (c SpecialCondition) Clone() SpecialCondition {
	out := c
	out.AdditionalRoles = append([]Role(nil), c.AdditionalRoles...)
	return out
}

// MatrixEntry holds the thresholds and special conditions of one approval type
type MatrixEntry struct {
	Type              ApprovalType                   `json:"type" yaml:"-"`
	Name              string                         `json:"name" yaml:"name"`
	Description       string                         `json:"description" yaml:"description"`
	Thresholds        []Threshold                    `json:"thresholds" yaml:"thresholds"`
	SpecialConditions map[Condition]SpecialCondition `json:"specialConditions" yaml:"specialConditions"`
}

// Clone returns a deep copy of the entry
func (e MatrixEntry) Clone() MatrixEntry {
	out := e
	out.Thresholds = make([]Threshold, len(e.Thresholds))
	for i, t := range e.Thresholds {
		out.Thresholds[i] = t.Clone()
	}
	out.SpecialConditions = make(map[Condition]SpecialCondition, len(e.SpecialConditions))
	for name, c := range e.SpecialConditions {
		out.SpecialConditions[name] = c.Clone()
	}
	return out
}

// RoleProfile describes the authority attached to a role
type RoleProfile struct {
	Role             Role     `json:"role" yaml:"-"`
	Level            int      `json:"level" yaml:"level"`
	MaxApprovalLimit *float64 `json:"maxApprovalLimit" yaml:"maxApprovalLimit,omitempty"` // nil means unlimited, 0 means advisory only
	CanDelegate      bool     `json:"canDelegate" yaml:"canDelegate"`
	Department       string   `json:"department" yaml:"department"`
}

// IsAdvisory returns true for roles that may comment but never approve
func (p RoleProfile) IsAdvisory() bool {
	return p.MaxApprovalLimit != nil && *p.MaxApprovalLimit == 0
}

// IsUnlimited returns true when the role has no numeric approval ceiling
func (p RoleProfile) IsUnlimited() bool {
	return p.MaxApprovalLimit == nil
}

// CanApproveAmount checks the role's numeric ceiling against amount
func (p RoleProfile) CanApproveAmount(amount float64) bool {
	if p.IsUnlimited() {
		return true
	}
	if p.IsAdvisory() {
		return false
	}
	return amount <= *p.MaxApprovalLimit
}

// Clone returns a deep copy of the profile
func (p RoleProfile) Clone() RoleProfile {
	out := p
	if p.MaxApprovalLimit != nil {
		limit := *p.MaxApprovalLimit
		out.MaxApprovalLimit = &limit
	}
	return out
}

// Amount returns a pointer to v, for building thresholds and limits
func Amount(v float64) *float64 {
	return &v
}
