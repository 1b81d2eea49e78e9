package cloudwriter

// CloudWriter streams one object to a cloud bucket. Writes buffer until
// Close, which flushes the whole object in a single upload.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// CloudWriterFactory mints writers bound to a bucket and object path, one
// per parquet day partition.
type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
