package db

import "fmt"

// DBConfigFromYamlObj builds the connection config from a parsed yaml block.
// Username and password may be overridden from environment variables by the
// caller before this is invoked.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	uri := yamlObj.ConnectionStr
	if yamlObj.Username != "" && yamlObj.Password != "" {
		uri = fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	} else if yamlObj.ConnectionPrefix != "" {
		uri = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	return DBConfig{
		URI:              uri,
		Timeout:          yamlObj.Timeout,
		IdleConnTimeout:  yamlObj.IdleConnTimeout,
		MaxPoolSize:      uint64(yamlObj.MaxPoolSize),
		DBNamePrefix:     yamlObj.DBNamePrefix,
		RunIndexCreation: yamlObj.RunIndexCreation,
	}
}
