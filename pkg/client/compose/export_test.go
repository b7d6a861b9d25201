package compose

// BaseArgs exposes compose argument assembly for tests.
func (c *CLI) BaseArgs() []string {
	return c.baseArgs()
}
