package misc

import (
	"errors"
	"fmt"
	"os"
)

func ReadFile(fileName string) ([]byte, error) {
	if fileName == "" {
		return nil, errors.New("no filename supplied")
	}
	fileBytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", fileName, err)
	}
	return fileBytes, nil
}

func WriteFile(fileName string, contents []byte) (int, error) {
	if fileName == "" {
		return 0, errors.New("no filename supplied")
	}
	// create/truncate file for writing
	file, err := os.Create(fileName)
	if err != nil {
		return 0, fmt.Errorf("unable to create file %s: %w", fileName, err)
	}
	// write contents to open file
	bytesWritten, err := file.Write(contents)
	if err != nil {
		file.Close()
		return bytesWritten, fmt.Errorf("unable to write file %s: %w", fileName, err)
	}
	// close file
	err = file.Close()
	if err != nil {
		return bytesWritten, fmt.Errorf("unable to close file %s: %w", fileName, err)
	}

	return bytesWritten, nil
}

// EnsureDir creates path (and any parents) if it does not exist yet.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err = os.MkdirAll(path, os.ModePerm); err != nil {
			return fmt.Errorf("unable to create folder %s: %w", path, err)
		}
	}
	return nil
}
