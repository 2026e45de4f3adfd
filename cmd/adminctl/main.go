package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type adminEntry struct {
	EmployeeID   string `yaml:"employee_id"`
	EmployeeName string `yaml:"employee_name"`
	Password     string `yaml:"password"`
	Disabled     bool   `yaml:"disabled,omitempty"`
}

func read(fn string) []*adminEntry {
	dat, err := os.ReadFile(fn)
	if err != nil {
		return nil
	}

	admins := make([]*adminEntry, 0)
	if err := yaml.Unmarshal(dat, &admins); err != nil {
		panic(err.Error())
	}

	return admins
}

func write(fn string, admins []*adminEntry) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}

	defer f.Close()

	enc := yaml.NewEncoder(f)
	return enc.Encode(admins)
}

func main() {
	file := flag.String("file", "admins.yml", "admins seed file")
	id := flag.String("id", "", "admin employee id")
	name := flag.String("name", "", "admin name")
	passwd := flag.String("password", "", "password")
	disable := flag.Bool("disable", false, "disable the account")
	flag.Parse()

	admins := read(*file)

	if *id == "" {
		for _, a := range admins {
			status := ""
			if a.Disabled {
				status = "disabled"
			}

			fmt.Printf("%s\t%s\t%s\n", a.EmployeeID, a.EmployeeName, status)
		}
		return
	}

	pass := *passwd
	if pass == "" && !*disable {
		reader := bufio.NewReader(os.Stdin)
		fmt.Print("password: ")
		p1, _ := reader.ReadString('\n')
		fmt.Print("repeat password: ")
		p2, _ := reader.ReadString('\n')

		if p1 != p2 {
			fmt.Println("\npassword mismatch")
			return
		}
		pass = strings.TrimSpace(p1)
	}

	var found bool

	for _, a := range admins {
		if a.EmployeeID == *id {
			found = true
			a.Disabled = *disable

			if pass != "" {
				a.Password = pass
			}

			if *name != "" {
				a.EmployeeName = *name
			}

			break
		}
	}

	if !found {
		admins = append(admins, &adminEntry{
			EmployeeID:   *id,
			EmployeeName: *name,
			Password:     pass,
			Disabled:     *disable,
		})
	}

	if err := write(*file, admins); err != nil {
		fmt.Println(err.Error())
	}
}
