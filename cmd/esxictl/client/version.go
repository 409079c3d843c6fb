package client

// Version of the client
const Version = "0.4.0"
