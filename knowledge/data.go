package knowledge

// Builtin returns the Thoughtful AI product table compiled into the binary.
// Used whenever no knowledge file is configured.
func Builtin() []Entry {
	return []Entry{
		{
			Topic:       "eligibility verification agent (EVA)",
			Description: "EVA automates the process of verifying a patient's eligibility and benefits information in real-time, eliminating manual data entry errors and reducing claim rejections.",
		},
		{
			Topic:       "claims processing agent (CAM)",
			Description: "CAM streamlines the submission and management of claims, improving accuracy, reducing manual intervention, and accelerating reimbursements.",
		},
		{
			Topic:       "payment posting agent (PHIL)",
			Description: "PHIL automates the posting of payments to patient accounts, ensuring fast, accurate reconciliation of payments and reducing administrative burden.",
		},
		{
			Topic:       "Thoughtful AI agents suite",
			Description: "Thoughtful AI provides a suite of AI-powered automation agents designed to streamline healthcare processes. These include Eligibility Verification (EVA), Claims Processing (CAM), and Payment Posting (PHIL), among others.",
		},
		{
			Topic:       "benefits of Thoughtful AI agents",
			Description: "Using Thoughtful AI's Agents can significantly reduce administrative costs, improve operational efficiency, and reduce errors in critical processes like claims management and payment posting.",
		},
	}
}
