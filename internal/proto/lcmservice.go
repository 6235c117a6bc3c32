// Package proto holds the lcmservice protobuf messages and the AppLCM gRPC
// service generated from lcmservice.proto.
package proto

//go:generate protoc --go_out=. --go_opt=paths=source_relative --go-grpc_out=. --go-grpc_opt=paths=source_relative lcmservice.proto

// Result values of the status field.
const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)
