package venue

type Venue struct {
	UID  string
	Name string
	City string
}
