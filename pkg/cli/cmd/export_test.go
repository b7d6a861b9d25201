package cmd

// BindSpecFlags exposes flag-to-config binding for tests.
var BindSpecFlags = bindSpecFlags
