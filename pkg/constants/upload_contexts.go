package constants

// UploadContext names the storage subdirectory an uploaded file belongs to.
type UploadContext string

const (
	// UploadContextJobOrder is the photo attached while creating a job order.
	UploadContextJobOrder UploadContext = "job_orders"
	// UploadContextJobPhoto is a progress photo uploaded to an existing job.
	UploadContextJobPhoto UploadContext = "job_photos"
)

func (uc UploadContext) String() string {
	return string(uc)
}
