package schema

// Remote procedures exposed by inference backends.
const (
	MethodSegmentWithMONAI        = "segmentWithMONAI"
	MethodSegmentWithNVSegmentCT  = "segmentWithNVSegmentCT"
	MethodSegmentWithNVSegmentMRI = "segmentWithNVSegmentMRI"
	MethodGenerateWithMAISI       = "generateWithMAISI"
	MethodMultimodalLlmAnalysis   = "multimodalLlmAnalysis"

	MethodPing = "ping"

	MethodNotificationCancel  = "notifications/cancelled"
	MethodNotificationMessage = "notifications/message"
)

// Client side stores the backend reads from or pushes into.
const (
	StoreVista3d      = "vista3d"
	StoreNVSegment    = "nv-segment"
	StoreMAISI        = "maisi"
	StoreBackendModel = "backend-model-store"
	StoreImageCache   = "image-cache"
)

// Client side store methods.
const (
	SetVista3dResult   = "setVista3dResult"
	SetNVSegmentResult = "setNVSegmentResult"
	SetMAISIResult     = "setMAISIResult"
	SetAnalysisResult  = "setAnalysisResult"
	GetVtkImageData    = "getVtkImageData"
	GetSelectedModel   = "selectedModel"
	GetAnalysisInput   = "analysisInput"
)

// StoreMethod returns the wire name of a client store method, e.g. "vista3d.setVista3dResult".
func StoreMethod(store, method string) string {
	return store + "." + method
}
