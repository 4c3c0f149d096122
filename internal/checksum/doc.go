// Package checksum provides SHA-256 hashing of source streams.
//
// Reader wraps the stream handed to a load job so that the digest and byte
// count of exactly what the service consumed can be logged afterwards.
//
// # Example Usage
//
//	hashed := checksum.NewReader(file)
//	job, err := warehouse.Load(ctx, bqseed.Source{Reader: hashed}, ...)
//	// after the job has consumed the stream
//	fmt.Println(hashed.BytesRead(), hashed.Sum())
package checksum
