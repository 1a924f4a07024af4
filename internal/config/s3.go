package config

// S3Config содержит настройки объектного хранилища изображений.
// BaseEndpoint оставляется пустым для AWS и указывается для
// S3-совместимых хранилищ (например, MinIO).
type S3Config struct {
	Region       string `yaml:"region" env:"MYFLIX_S3_REGION" env-default:"us-west-1"`
	Bucket       string `yaml:"bucket" env:"MYFLIX_S3_BUCKET" env-default:"myflix-images"`
	AccessKey    string `yaml:"access_key" env:"MYFLIX_S3_ACCESS_KEY" env-default:""`
	SecretKey    string `yaml:"secret_key" env:"MYFLIX_S3_SECRET_KEY" env-default:""`
	BaseEndpoint string `yaml:"base_endpoint" env:"MYFLIX_S3_BASE_ENDPOINT" env-default:""`
}
