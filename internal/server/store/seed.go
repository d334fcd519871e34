package store

import (
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

func seedTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// seedCollections returns the demo collections preloaded into a fresh memory
// store. Counts match the seeded QA pairs.
func seedCollections() []models.Collection {
	return []models.Collection{
		{
			ID:          "col1",
			Name:        "Equipment Manuals",
			Description: "Technical manuals for equipment maintenance",
			Tags:        []string{"manuals", "maintenance", "technical"},
			QAPairCount: 4,
			CreatedAt:   seedTime("2023-05-15T10:30:00Z"),
			UpdatedAt:   seedTime("2023-06-20T15:45:00Z"),
		},
		{
			ID:          "col2",
			Name:        "SAP Notifications",
			Description: "Historical customer issues and resolutions",
			Tags:        []string{"sap", "notifications", "issues"},
			QAPairCount: 2,
			CreatedAt:   seedTime("2023-04-10T09:15:00Z"),
			UpdatedAt:   seedTime("2023-06-22T11:20:00Z"),
		},
		{
			ID:          "col3",
			Name:        "Internal Wiki",
			Description: "Knowledge base for common procedures",
			Tags:        []string{"wiki", "knowledge", "procedures"},
			QAPairCount: 2,
			CreatedAt:   seedTime("2023-01-05T14:20:00Z"),
			UpdatedAt:   seedTime("2023-06-15T08:30:00Z"),
		},
	}
}

func seedQAPairs() []models.QAPair {
	return []models.QAPair{
		{
			ID:           "qa1",
			CollectionID: "col1",
			Question:     "How do I reset the equipment?",
			Answer:       "To reset the equipment, power cycle the device and wait for 30 seconds before turning it back on.",
			Documents: []models.Document{
				{
					ID:      "doc1",
					Title:   "Equipment Manual",
					Content: "Section on troubleshooting steps for common issues. Power cycle procedures are outlined on page 42.",
					Source:  models.Source{ID: "tech_docs", Name: "Technical Documentation", Type: "manual"},
					URL:     "https://example.com/docs/equipment-manual.pdf",
					Metadata: map[string]any{
						"document_id":  "EM-2023-042",
						"last_updated": "2023-03-15",
						"version":      "2.4",
						"department":   "Engineering",
						"page_number":  42,
					},
				},
			},
			Status:    models.StatusApproved,
			Metadata:  map[string]any{"priority": "high"},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-06-01T10:00:00Z"),
			UpdatedAt: seedTime("2023-06-02T15:30:00Z"),
		},
		{
			ID:           "qa2",
			CollectionID: "col1",
			Question:     "What are the maintenance intervals?",
			Answer:       "Regular maintenance should be performed every 3 months, with a major service annually.",
			Documents: []models.Document{
				{
					ID:      "doc2",
					Title:   "Maintenance Schedule",
					Content: "Regular maintenance intervals are specified as quarterly (every 3 months) for basic service, with an annual comprehensive service that includes component replacement and calibration.",
					Source:  models.Source{ID: "tech_docs", Name: "Technical Documentation", Type: "schedule"},
					URL:     "https://example.com/docs/maintenance-schedule.pdf",
					Metadata: map[string]any{
						"document_id":  "MS-2023-015",
						"last_updated": "2023-02-10",
						"version":      "1.2",
						"department":   "Maintenance",
						"priority":     "high",
					},
				},
			},
			Status:    models.StatusReadyForReview,
			Metadata:  map[string]any{"priority": "medium"},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-06-05T09:45:00Z"),
			UpdatedAt: seedTime("2023-06-06T14:20:00Z"),
		},
		{
			ID:           "qa3",
			CollectionID: "col2",
			Question:     "How do I create a new SAP notification?",
			Answer:       "Navigate to the Notifications module, click 'Create New', fill in the required fields, and submit the form.",
			Documents: []models.Document{
				{
					ID:      "doc3",
					Title:   "SAP User Guide",
					Content: "To create a new notification in SAP, navigate to the Notifications module using the main menu. Click on the 'Create New' button in the top toolbar. Fill in all required fields marked with an asterisk (*), including notification type, priority, and description. Attach any relevant documents using the attachment feature. Review the information and click 'Submit' to create the notification.",
					Source:  models.Source{ID: "sap_docs", Name: "SAP Documentation", Type: "user_guide"},
					URL:     "https://example.com/docs/sap-guide.pdf",
					Metadata: map[string]any{
						"document_id":  "SAP-UG-2023-034",
						"last_updated": "2023-01-05",
						"version":      "3.1",
						"department":   "IT",
						"module":       "Notifications",
					},
				},
			},
			Status:    models.StatusReadyForReview,
			Metadata:  map[string]any{"priority": "low"},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-06-10T11:30:00Z"),
			UpdatedAt: seedTime("2023-06-10T11:30:00Z"),
		},
		{
			ID:           "qa4",
			CollectionID: "col3",
			Question:     "Where can I find the company holiday schedule?",
			Answer:       "The company holiday schedule is available on the HR page of the internal wiki, under 'Benefits and Time Off'.",
			Documents: []models.Document{
				{
					ID:      "doc4",
					Title:   "HR Policies",
					Content: "The company holiday schedule is published annually on the HR page of the internal wiki. Navigate to the 'Benefits and Time Off' section to find the current year's holiday calendar. This calendar includes all company-wide holidays, floating holidays, and early closure days. Employees should refer to this schedule when planning time off to avoid scheduling conflicts with company closures.",
					Source:  models.Source{ID: "internal_wiki", Name: "Internal Wiki", Type: "policy"},
					URL:     "https://internal-wiki.example.com/hr/benefits/holidays",
					Metadata: map[string]any{
						"document_id":  "HR-POL-2023-007",
						"last_updated": "2023-01-15",
						"version":      "2023.1",
						"department":   "Human Resources",
						"category":     "Benefits",
					},
				},
			},
			Status:    models.StatusApproved,
			Metadata:  map[string]any{"priority": "medium"},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-05-20T13:15:00Z"),
			UpdatedAt: seedTime("2023-05-21T09:10:00Z"),
		},
		{
			ID:           "qa5",
			CollectionID: "col1",
			Question:     "How do I troubleshoot error code E-45?",
			Answer:       "Error code E-45 indicates a power supply issue. Check the power connections and voltage levels.",
			Documents: []models.Document{
				{
					ID:      "doc1",
					Title:   "Equipment Manual",
					Content: "Error code E-45 indicates a power supply issue. This is typically caused by voltage fluctuations, loose connections, or faulty power supply units. Check all power connections for secure fitting, verify the input voltage matches specifications (110-120V or 220-240V depending on your region), and inspect the power supply unit for visible damage. If the issue persists after checking connections, the power supply unit may need replacement.",
					Source:  models.Source{ID: "tech_docs", Name: "Technical Documentation", Type: "manual"},
					URL:     "https://example.com/docs/equipment-manual.pdf",
					Metadata: map[string]any{
						"document_id":  "EM-2023-042",
						"last_updated": "2023-03-15",
						"version":      "2.4",
						"department":   "Engineering",
						"page_number":  87,
						"section":      "Error Codes",
					},
				},
			},
			Status:    models.StatusRejected,
			Metadata:  map[string]any{"priority": "high"},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-06-08T14:20:00Z"),
			UpdatedAt: seedTime("2023-06-09T10:15:00Z"),
		},
		{
			ID:           "qa6",
			CollectionID: "col1",
			Question:     "What is the warranty period for replacement parts?",
			Answer:       "All replacement parts come with a 90-day warranty from the date of installation.",
			Documents: []models.Document{
				{
					ID:      "doc5",
					Title:   "Warranty Information",
					Content: "All replacement parts provided by the manufacturer come with a standard 90-day warranty from the date of installation. This warranty covers defects in materials and workmanship under normal use conditions. To claim warranty service, customers must provide proof of installation date and the original work order number. Extended warranty options are available for purchase at an additional cost, extending coverage to 1 year or 2 years from installation date.",
					Source:  models.Source{ID: "tech_docs", Name: "Technical Documentation", Type: "warranty"},
					URL:     "https://example.com/docs/warranty-information.pdf",
					Metadata: map[string]any{
						"document_id":    "WI-2023-018",
						"last_updated":   "2023-02-28",
						"version":        "1.3",
						"department":     "Customer Service",
						"legal_approval": "Approved",
					},
				},
			},
			Status: models.StatusRevisionRequested,
			Metadata: map[string]any{
				"priority":          "medium",
				"revision_comments": "Please provide more details about the extended warranty options, including pricing and terms for the 1-year and 2-year options.",
			},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-06-12T09:30:00Z"),
			UpdatedAt: seedTime("2023-06-12T09:30:00Z"),
		},
		{
			ID:           "qa7",
			CollectionID: "col2",
			Question:     "What information should be included in an SAP notification?",
			Answer:       "An SAP notification should include the equipment ID, problem description, and priority level.",
			Documents: []models.Document{
				{
					ID:      "doc3",
					Title:   "SAP User Guide",
					Content: "When creating a notification in SAP, certain information is required to ensure proper handling and resolution. The notification form includes fields for equipment identification, problem categorization, and priority assignment. Additional information can be added in the notes section and through file attachments.",
					Source:  models.Source{ID: "sap_docs", Name: "SAP Documentation", Type: "user_guide"},
					URL:     "https://example.com/docs/sap-guide.pdf",
					Metadata: map[string]any{
						"document_id":  "SAP-UG-2023-034",
						"last_updated": "2023-01-05",
						"version":      "3.1",
						"department":   "IT",
						"module":       "Notifications",
					},
				},
			},
			Status: models.StatusRevisionRequested,
			Metadata: map[string]any{
				"priority":          "high",
				"revision_comments": "The answer is incomplete. Please include information about required vs. optional fields, and mention the attachment capabilities for photos and supporting documents.",
			},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-05-30T14:15:00Z"),
			UpdatedAt: seedTime("2023-06-01T09:25:00Z"),
		},
		{
			ID:           "qa8",
			CollectionID: "col3",
			Question:     "How do I request access to restricted wiki sections?",
			Answer:       "To request access to restricted wiki sections, contact your department manager.",
			Documents: []models.Document{
				{
					ID:      "doc4",
					Title:   "HR Policies",
					Content: "Access to restricted sections of the internal wiki is managed by department managers. Employees needing access to additional content should submit a request through their direct supervisor.",
					Source:  models.Source{ID: "internal_wiki", Name: "Internal Wiki", Type: "policy"},
					URL:     "https://internal-wiki.example.com/hr/policies/access",
					Metadata: map[string]any{
						"document_id":  "HR-POL-2023-012",
						"last_updated": "2023-02-10",
						"version":      "2023.1",
						"department":   "Human Resources",
						"category":     "Access Control",
					},
				},
			},
			Status: models.StatusRevisionRequested,
			Metadata: map[string]any{
				"priority":          "low",
				"revision_comments": "This answer needs to be expanded to include the formal process. Please specify that requests must be submitted through the IT portal with manager approval, and include the typical approval timeline.",
			},
			CreatedBy: "demo_user",
			CreatedAt: seedTime("2023-06-05T11:30:00Z"),
			UpdatedAt: seedTime("2023-06-07T14:20:00Z"),
		},
	}
}
