package seeders

import (
	"approval-matrix-service/internal/models"
)

const (
	juta   = 1_000_000
	miliar = 1_000_000_000
)

// SystemMatrix returns the built-in approval matrix for construction transactions.
// Amounts are in IDR. Every type ends with an unbounded threshold.
func SystemMatrix() []models.MatrixEntry {
	return []models.MatrixEntry{
		{
			Type:        models.ApprovalTypeRAB,
			Name:        "RAB & BOQ Approval",
			Description: "Approval matrix for cost budgets (RAB) and bills of quantities",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(25 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer},
					Description:    "Small materials and minor works",
					TimeLimitHours: 24,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(100 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager},
					Description:    "Structural and architectural works",
					TimeLimitHours: 48,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(500 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleAreaManager},
					Description:    "Major works and MEP",
					TimeLimitHours: 72,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(1 * miliar),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleAreaManager, models.RoleOperationsDirector},
					Description:    "Large contracts and infrastructure",
					TimeLimitHours: 96,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleAreaManager, models.RoleOperationsDirector, models.RoleFinanceDirector},
					Description:    "Strategic and mega projects",
					TimeLimitHours: 168,
					AutoEscalate:   false,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionHazardousWork: {
					AdditionalRoles: []models.Role{models.RoleSafetyManager, models.RoleEnvironmentalOfficer},
					Description:     "Hazardous work or work with environmental impact",
				},
				models.ConditionClientApproval: {
					AdditionalRoles: []models.Role{models.RoleClientRepresentative},
					Description:     "Changes affecting the client contract",
				},
			},
		},
		{
			Type:        models.ApprovalTypePurchaseOrders,
			Name:        "Purchase Order Approval",
			Description: "Approval matrix for purchases of materials, equipment and services",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(15 * juta),
					Roles:          []models.Role{models.RoleProjectManager},
					Description:    "Routine materials and consumables",
					TimeLimitHours: 24,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(75 * juta),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleProcurementManager},
					Description:    "Structural materials and small equipment",
					TimeLimitHours: 48,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(300 * juta),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleProcurementManager, models.RoleAreaManager},
					Description:    "Heavy equipment and special materials",
					TimeLimitHours: 72,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(1 * miliar),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleProcurementManager, models.RoleAreaManager, models.RoleOperationsDirector},
					Description:    "Major supplier contracts",
					TimeLimitHours: 96,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleProjectManager, models.RoleProcurementManager, models.RoleAreaManager, models.RoleOperationsDirector, models.RoleFinanceDirector},
					Description:    "Strategic procurement and key vendors",
					TimeLimitHours: 168,
					AutoEscalate:   false,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionImportedMaterial: {
					AdditionalRoles: []models.Role{models.RoleImportExportManager, models.RoleFinanceDirector},
					Description:     "Imported material paid by letter of credit",
				},
				models.ConditionLongTermContract: {
					AdditionalRoles: []models.Role{models.RoleLegalOfficer, models.RoleFinanceDirector},
					Description:     "Contracts longer than one year",
				},
			},
		},
		{
			Type:        models.ApprovalTypeWorkOrders,
			Name:        "Work Order Approval",
			Description: "Approval matrix for work orders and assignments",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(50 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager},
					Description:    "Routine work and maintenance",
					TimeLimitHours: 24,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(200 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleAreaManager},
					Description:    "Specialist subcontractors and complex work",
					TimeLimitHours: 48,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(500 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleAreaManager, models.RoleOperationsDirector},
					Description:    "Major subcontractors and specialized work",
					TimeLimitHours: 72,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleAreaManager, models.RoleOperationsDirector, models.RoleFinanceDirector},
					Description:    "Strategic partnerships and joint operations",
					TimeLimitHours: 168,
					AutoEscalate:   false,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionCriticalPath: {
					AdditionalRoles: []models.Role{models.RolePlanningManager},
					Description:     "Work on the critical path that affects the schedule",
				},
				models.ConditionQualityCritical: {
					AdditionalRoles: []models.Role{models.RoleQAQCManager},
					Description:     "Work that needs dedicated quality assurance",
				},
			},
		},
		{
			Type:        models.ApprovalTypeChangeOrders,
			Name:        "Change Order Approval",
			Description: "Approval matrix for contract changes and work variations",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(100 * juta),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleClientRepresentative},
					Description:    "Minor changes and design adjustments",
					TimeLimitHours: 72,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(500 * juta),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleAreaManager, models.RoleClientRepresentative, models.RoleDesignConsultant},
					Description:    "Significant changes with schedule impact",
					TimeLimitHours: 120,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleProjectManager, models.RoleAreaManager, models.RoleOperationsDirector, models.RoleClientRepresentative, models.RoleDesignConsultant, models.RoleFinanceDirector},
					Description:    "Major contract variations and scope changes",
					TimeLimitHours: 240,
					AutoEscalate:   false,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionScheduleImpact: {
					AdditionalRoles: []models.Role{models.RolePlanningManager},
					Description:     "Changes affecting contract milestones",
				},
				models.ConditionRegulatory: {
					AdditionalRoles: []models.Role{models.RoleLegalOfficer, models.RoleRegulatoryAffairs},
					Description:     "Changes that need additional permits",
				},
			},
		},
		{
			Type:        models.ApprovalTypeMaterialRequests,
			Name:        "Material Request Approval",
			Description: "Approval matrix for material requests from site",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(25 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer},
					Description:    "Routine material and emergency stock",
					TimeLimitHours: 8,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(100 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager},
					Description:    "Special material and additional requirements",
					TimeLimitHours: 24,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(300 * juta),
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleProcurementManager},
					Description:    "Bulk material and long lead time items",
					TimeLimitHours: 48,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleSiteEngineer, models.RoleProjectManager, models.RoleProcurementManager, models.RoleAreaManager},
					Description:    "Strategic material and contract amendments",
					TimeLimitHours: 72,
					AutoEscalate:   true,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionUrgent: {
					TimeLimitHours: 4,
					Description:    "Emergency material request for critical activities",
				},
				models.ConditionQualityControl: {
					AdditionalRoles: []models.Role{models.RoleQAQCManager},
					Description:     "Material with special specifications or testing requirements",
				},
			},
		},
		{
			Type:        models.ApprovalTypeProgressPayments,
			Name:        "Progress Payment Approval",
			Description: "Approval matrix for payments based on work progress",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(500 * juta),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleQuantitySurveyor},
					Description:    "Regular progress payment per term",
					TimeLimitHours: 48,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(2 * miliar),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleQuantitySurveyor, models.RoleAreaManager},
					Description:    "Major milestone payment",
					TimeLimitHours: 72,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleProjectManager, models.RoleQuantitySurveyor, models.RoleAreaManager, models.RoleFinanceDirector},
					Description:    "Final payment and retention release",
					TimeLimitHours: 120,
					AutoEscalate:   false,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionClientApproval: {
					AdditionalRoles: []models.Role{models.RoleClientRepresentative},
					Description:     "Payment that needs client approval",
				},
				models.ConditionWarranty: {
					AdditionalRoles: []models.Role{models.RoleLegalOfficer},
					Description:     "Payment tied to warranty and guarantees",
				},
			},
		},
		{
			Type:        models.ApprovalTypeContractVariations,
			Name:        "Contract Variation Approval",
			Description: "Approval matrix for contract variations and addenda",
			Thresholds: []models.Threshold{
				{
					Max:            models.Amount(200 * juta),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleLegalOfficer},
					Description:    "Minor contract adjustments",
					TimeLimitHours: 96,
					AutoEscalate:   true,
				},
				{
					Max:            models.Amount(1 * miliar),
					Roles:          []models.Role{models.RoleProjectManager, models.RoleLegalOfficer, models.RoleAreaManager, models.RoleClientRepresentative},
					Description:    "Significant contract modifications",
					TimeLimitHours: 168,
					AutoEscalate:   true,
				},
				{
					Roles:          []models.Role{models.RoleProjectManager, models.RoleLegalOfficer, models.RoleAreaManager, models.RoleOperationsDirector, models.RoleClientRepresentative, models.RoleFinanceDirector},
					Description:    "Major contract amendments and extensions",
					TimeLimitHours: 336,
					AutoEscalate:   false,
				},
			},
			SpecialConditions: map[models.Condition]models.SpecialCondition{
				models.ConditionTimeExtension: {
					AdditionalRoles: []models.Role{models.RolePlanningManager},
					Description:     "Variations that extend the contract period",
				},
				models.ConditionScopeChange: {
					AdditionalRoles: []models.Role{models.RoleDesignConsultant, models.RoleTechnicalManager},
					Description:     "Significant changes to the scope of work",
				},
			},
		},
	}
}

// advisoryOnly is the approval limit of roles that comment on but never approve a transaction
const advisoryOnly = 0

// SystemRoles returns the built-in role hierarchy, in declaration order.
func SystemRoles() []models.RoleProfile {
	return []models.RoleProfile{
		{Role: models.RoleSiteEngineer, Level: 1, MaxApprovalLimit: models.Amount(25 * juta), CanDelegate: false, Department: "Engineering"},
		{Role: models.RoleProjectManager, Level: 2, MaxApprovalLimit: models.Amount(100 * juta), CanDelegate: true, Department: "Project Management"},
		{Role: models.RoleProcurementManager, Level: 2, MaxApprovalLimit: models.Amount(75 * juta), CanDelegate: true, Department: "Procurement"},
		{Role: models.RoleQAQCManager, Level: 2, MaxApprovalLimit: models.Amount(50 * juta), CanDelegate: false, Department: "Quality Assurance"},
		{Role: models.RoleSafetyManager, Level: 2, MaxApprovalLimit: models.Amount(advisoryOnly), CanDelegate: false, Department: "HSE"},
		{Role: models.RoleEnvironmentalOfficer, Level: 2, MaxApprovalLimit: models.Amount(advisoryOnly), CanDelegate: false, Department: "HSE"},
		{Role: models.RoleQuantitySurveyor, Level: 2, MaxApprovalLimit: models.Amount(100 * juta), CanDelegate: false, Department: "Cost Control"},
		{Role: models.RoleImportExportManager, Level: 2, MaxApprovalLimit: models.Amount(75 * juta), CanDelegate: true, Department: "Procurement"},
		{Role: models.RoleAreaManager, Level: 3, MaxApprovalLimit: models.Amount(500 * juta), CanDelegate: true, Department: "Operations"},
		{Role: models.RolePlanningManager, Level: 3, MaxApprovalLimit: models.Amount(200 * juta), CanDelegate: true, Department: "Planning"},
		{Role: models.RoleTechnicalManager, Level: 3, MaxApprovalLimit: models.Amount(200 * juta), CanDelegate: true, Department: "Engineering"},
		{Role: models.RoleLegalOfficer, Level: 3, MaxApprovalLimit: models.Amount(advisoryOnly), CanDelegate: false, Department: "Legal"},
		{Role: models.RoleRegulatoryAffairs, Level: 3, MaxApprovalLimit: models.Amount(advisoryOnly), CanDelegate: false, Department: "Legal"},
		{Role: models.RoleDesignConsultant, Level: 3, MaxApprovalLimit: models.Amount(advisoryOnly), CanDelegate: false, Department: "Design"},
		{Role: models.RoleOperationsDirector, Level: 4, MaxApprovalLimit: models.Amount(2 * miliar), CanDelegate: true, Department: "Operations"},
		{Role: models.RoleFinanceDirector, Level: 4, MaxApprovalLimit: models.Amount(5 * miliar), CanDelegate: true, Department: "Finance"},
		{Role: models.RoleClientRepresentative, Level: 5, CanDelegate: false, Department: "Client"},
	}
}
