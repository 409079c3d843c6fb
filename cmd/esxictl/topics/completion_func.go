package topics

const (
	bashCompletionFunc = `
__esxictl_host_args() {
    local i
    __esxictl_host=""
    for (( i=1; i < ${#COMP_WORDS[@]}; i++ )); do
        if [ "${COMP_WORDS[i]}" = "-H" ] || [ "${COMP_WORDS[i]}" = "--host" ]; then
            __esxictl_host="--host ${COMP_WORDS[i+1]}"
        fi
    done
}

__internal_list_vib_files() {
    local cur=${COMP_WORDS[COMP_CWORD]}

    local IFS=$'\n'
    COMPREPLY=( $( compgen -f -X '!*.vib' -- $cur ) )
}

__internal_list_vms() {
    local esxictl_output out
    __esxictl_host_args
    if esxictl_output=$(esxictl $__esxictl_host vm list --basic 2>/dev/null); then
        out=($(echo "${esxictl_output}"))
        COMPREPLY=( $( compgen -W "${out[*]}" -- "$cur" ) )
    fi
}

__esxictl_get_hosts() {
    local out hosts
    hosts=$(egrep '^[[:blank:]]*name[[:blank:]]*=' ~/.esxictl.toml | awk -F= '{print $2}' | tr -d '"')
    out=($(echo $hosts))
    COMPREPLY=( $( compgen -W "${out[*]}" -- "$cur" ) )
}

__custom_func() {
    if [ "$prev" = "-H" ] || [ "$prev" = "--host" ]; then
        __esxictl_get_hosts
        return
    fi
    if [ "$prev" = "-f" ] || [ "$prev" = "--file" ]; then
        __internal_list_vib_files
        return
    fi
    case ${last_command} in
        esxictl_autostart)
            __internal_list_vms
            return
            ;;
        *)
            ;;
    esac
}
`
)
