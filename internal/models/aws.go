package models

// ---------------------------------------------------------------------------
// AWS inventory models (collected by provider, consumed by the sweep rules)
//
// Descriptors are transient: built from one describe call, filtered, and
// discarded once the check that requested them has reported. Optional SDK
// pointer fields are flattened to empty strings and nil slices; an empty
// linking field always means "not linked".
// ---------------------------------------------------------------------------

// Load balancer kinds.
const (
	LoadBalancerClassic     = "classic"
	LoadBalancerApplication = "application"
	LoadBalancerNetwork     = "network"
	LoadBalancerGateway     = "gateway"
)

// LoadBalancer is a classic or v2 Elastic Load Balancer.
type LoadBalancer struct {
	Name   string `json:"name"`
	ARN    string `json:"arn,omitempty"`
	Region string `json:"region"`
	Kind   string `json:"kind"`

	// Instances lists attached instance IDs (classic) or registered target
	// IDs across every target group (v2).
	Instances []string `json:"instances,omitempty"`
}

// Volume is an EBS volume.
type Volume struct {
	VolumeID string `json:"volume_id"`
	Region   string `json:"region"`
	State    string `json:"state"`
	SizeGB   int32  `json:"size_gb"`

	// Attachments lists the instance IDs the volume is attached to.
	Attachments []string `json:"attachments,omitempty"`
}

// Snapshot is a completed EBS snapshot owned by the account.
type Snapshot struct {
	SnapshotID string `json:"snapshot_id"`
	Region     string `json:"region"`
	VolumeID   string `json:"volume_id,omitempty"`
}

// Image is an available AMI owned by the account.
type Image struct {
	ImageID string `json:"image_id"`
	Region  string `json:"region"`

	// SnapshotIDs lists the EBS snapshot IDs referenced by the image's
	// block-device mappings. Mappings without an EBS snapshot are skipped.
	SnapshotIDs []string `json:"snapshot_ids,omitempty"`
}

// Address is an Elastic IP address.
type Address struct {
	PublicIP     string `json:"public_ip"`
	AllocationID string `json:"allocation_id,omitempty"`
	Region       string `json:"region"`
	InstanceID   string `json:"instance_id,omitempty"`
}

// Environment is an Elastic Beanstalk environment.
type Environment struct {
	Name            string `json:"name"`
	ApplicationName string `json:"application_name,omitempty"`
	Region          string `json:"region"`
	Status          string `json:"status"`
}

// Stack is an OpsWorks stack.
type Stack struct {
	StackID string `json:"stack_id"`
	Name    string `json:"name"`
	Region  string `json:"region"`
}

// StackInventory holds the number of sub-resources an OpsWorks stack
// manages. Nothing is filtered; every count is reported.
type StackInventory struct {
	Stack         Stack `json:"stack"`
	ECSClusters   int   `json:"ecs_clusters"`
	ElasticIPs    int   `json:"elastic_ips"`
	Instances     int   `json:"instances"`
	LoadBalancers int   `json:"load_balancers"`
	RDSInstances  int   `json:"rds_instances"`
	Volumes       int   `json:"volumes"`
}

// DBSnapshot is an RDS DB snapshot.
type DBSnapshot struct {
	SnapshotID string `json:"snapshot_id"`
	Region     string `json:"region"`

	// SourceInstanceID is the identifier of the DB instance the snapshot
	// was taken from.
	SourceInstanceID string `json:"source_instance_id,omitempty"`
}

// DBInstance is an RDS DB instance.
type DBInstance struct {
	DBInstanceID string `json:"db_instance_id"`
	Region       string `json:"region"`
	Status       string `json:"status"`
}
