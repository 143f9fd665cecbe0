package services

const (
	// DBServiceName is the compose service that backs the shop database
	DBServiceName = "db"

	// containerNamePrefix matches the container_name convention in the
	// compose manifest (stringup-db etc.)
	containerNamePrefix = "stringup-"
)

// ContainerName returns the container name for a compose service
func ContainerName(service string) string {
	return containerNamePrefix + service
}
