package config

type StorageConfig interface {
	GetUploadDir() string
}

type Storage struct{}

var _ StorageConfig = Storage{}

func (Storage) GetUploadDir() string {
	return GetEnv("UPLOAD_DIR", "./uploads")
}
