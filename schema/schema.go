package schema

// Modalities accepted by segmentWithNVSegmentMRI.
const (
	ModalityMRIBody  = "MRI_BODY"
	ModalityCTBody   = "CT_BODY"
	ModalityMRIBrain = "MRI_BRAIN"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GenerateParams carries MAISI generation parameters.
type GenerateParams struct {
	AnatomyList []string   `json:"anatomy_list"`
	OutputSize  [3]int     `json:"output_size"`
	Spacing     [3]float64 `json:"spacing"`
}

// ChatMessage is a single conversation turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AnalysisInput is what the backend reads from backend-model-store.analysisInput[imageId].
type AnalysisInput struct {
	Prompt  string        `json:"prompt"`
	History []ChatMessage `json:"history,omitempty"`
}

// IsValidModality returns true for a supported MRI segmentation modality
func IsValidModality(modality string) bool {
	switch modality {
	case ModalityMRIBody, ModalityCTBody, ModalityMRIBrain:
		return true
	}
	return false
}

// LogMessage is carried by backend log notifications
type LogMessage struct {
	Level  string      `json:"level"`
	Logger string      `json:"logger,omitempty"`
	Data   interface{} `json:"data"`
}

// CancelledParams is carried by a cancellation notification
type CancelledParams struct {
	RequestId int    `json:"requestId"`
	Reason    string `json:"reason,omitempty"`
}

// Multimodal chat models.
const (
	ModelMedGemma    = "MedGemma"
	ModelClaraReason = "Clara NV-Reason-CXR-3B"
)

// Models lists supported chat models in presentation order
var Models = []string{ModelMedGemma, ModelClaraReason}
